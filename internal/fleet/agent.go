package fleet

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

type AgentKind int

const (
	Reviewer AgentKind = iota
	Implementer
)

func (k AgentKind) String() string {
	switch k {
	case Reviewer:
		return "reviewer"
	case Implementer:
		return "implementer"
	default:
		return "unknown"
	}
}

// iterationMarker is written by the agent runner at the top of every loop
// iteration; counting occurrences gives the iteration number.
const iterationMarker = "Starting"

// maxActivityLen bounds the last-activity line, counted in runes so a
// multi-byte line is never cut mid-character.
const maxActivityLen = 80

// Agent is one monitored worker process. Agents live for the lifetime of
// their Instance and are mutated in place on every refresh.
type Agent struct {
	Name       string
	Kind       AgentKind
	InstanceID string

	IsRunning    bool
	Iterations   int
	LastActivity string
}

func newAgent(name string, kind AgentKind, instanceID string) *Agent {
	return &Agent{Name: name, Kind: kind, InstanceID: instanceID}
}

// SessionName returns the tmux session this agent runs in.
func (a *Agent) SessionName(prefix string) string {
	return SessionName(prefix, a.InstanceID, a.Name)
}

// Refresh re-derives liveness and log activity. Every probe degrades
// silently: a failed liveness check reads as not running, an unreadable log
// keeps the previous iteration count and activity line.
func (a *Agent) Refresh(ctx context.Context, sessions SessionManager, prefix, logsDir string) {
	exists, err := sessions.HasSession(ctx, a.SessionName(prefix))
	a.IsRunning = err == nil && exists

	if logsDir != "" {
		a.readLog(logsDir)
	}
}

func (a *Agent) readLog(logsDir string) {
	data, err := os.ReadFile(filepath.Join(logsDir, a.Name+".log"))
	if err != nil {
		return
	}
	content := string(data)

	// Recomputed from scratch each call, not accumulated.
	a.Iterations = strings.Count(content, iterationMarker)

	// Last meaningful line: newest line that is not blank and not a
	// bracketed timestamp/framing line.
	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if strings.HasPrefix(line, "[") || strings.TrimSpace(line) == "" {
			continue
		}
		a.LastActivity = truncate(line, maxActivityLen)
		break
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
