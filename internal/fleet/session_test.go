package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionName(t *testing.T) {
	tests := []struct {
		name      string
		session   string
		wantID    string
		wantAgent string
		wantOK    bool
	}{
		{"valid", "amptown-abc12345-reviewer-alpha", "abc12345", "reviewer-alpha", true},
		{"valid uppercase hex", "amptown-ABC12345-impl-beta", "ABC12345", "impl-beta", true},
		{"wrong prefix", "other-abc12345-reviewer-alpha", "", "", false},
		{"prefix only", "amptown-", "", "", false},
		{"id too short", "amptown-abc123-reviewer-alpha", "", "", false},
		{"id not hex", "amptown-abcdefgh-reviewer-alpha", "", "", false},
		{"no separator after id", "amptown-abc12345reviewer", "", "", false},
		{"missing agent name", "amptown-abc12345-", "", "", false},
		{"unrelated session", "scratch", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, agent, ok := ParseSessionName("amptown", tt.session)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantAgent, agent)
		})
	}
}

func TestSessionNameRoundTrip(t *testing.T) {
	session := SessionName("amptown", "deadbeef", "impl-gamma")
	require.Equal(t, "amptown-deadbeef-impl-gamma", session)

	id, agent, ok := ParseSessionName("amptown", session)
	require.True(t, ok)
	assert.Equal(t, "deadbeef", id)
	assert.Equal(t, "impl-gamma", agent)
}
