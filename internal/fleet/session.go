package fleet

import (
	"fmt"
	"strings"
)

// Instance ids minted by amptown are 8 lowercase hex characters. The id in a
// log directory name is looser (anything >= 6 chars), but session names are
// held to the strict grammar so unrelated tmux sessions never register.
const sessionIDLen = 8

// SessionName formats the tmux session name for one agent of one instance.
func SessionName(prefix, instanceID, agentName string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, instanceID, agentName)
}

// ParseSessionName is the inverse of SessionName. It returns the instance id
// and agent name, with ok=false for anything outside the naming grammar.
func ParseSessionName(prefix, session string) (id, agent string, ok bool) {
	rest, found := strings.CutPrefix(session, prefix+"-")
	if !found {
		return "", "", false
	}
	if len(rest) <= sessionIDLen || rest[sessionIDLen] != '-' {
		return "", "", false
	}
	id = rest[:sessionIDLen]
	if !isHex(id) {
		return "", "", false
	}
	agent = rest[sessionIDLen+1:]
	if agent == "" {
		return "", "", false
	}
	return id, agent, true
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
