package fleet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiscoverer(sessions SessionManager, patterns []string) *Discoverer {
	d := NewDiscoverer(sessions, &fakePRs{}, "amptown", 10, testLogger())
	d.LogPatterns = patterns
	return d
}

func TestDiscoverFromSessions(t *testing.T) {
	sessions := &fakeSessions{names: []string{
		"amptown-abc12345-reviewer-alpha",
		"amptown-abc12345-impl-beta",
		"amptown-deadbeef-reviewer-gamma",
		"amptown-nothexid-reviewer-alpha", // id not hex
		"amptown-abc123-impl-alpha",       // id too short
		"unrelated-session",
	}}

	got := newTestDiscoverer(sessions, nil).Discover(context.Background())

	require.Len(t, got, 2)
	assert.Contains(t, got, "abc12345")
	assert.Contains(t, got, "deadbeef")
}

func TestDiscoverSessionScanFailure(t *testing.T) {
	sessions := &fakeSessions{listErr: errors.New("no server running")}

	got := newTestDiscoverer(sessions, nil).Discover(context.Background())

	assert.Empty(t, got)
}

func TestDiscoverFromLogs(t *testing.T) {
	root := t.TempDir()
	logsDir := filepath.Join(root, "amptown-cafe0123", "logs")
	require.NoError(t, os.MkdirAll(logsDir, 0o755))
	// Too-short id and non-directory matches must be skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "amptown-abc", "logs"), 0o755))

	d := newTestDiscoverer(&fakeSessions{}, []string{filepath.Join(root, "amptown-*", "logs")})
	got := d.Discover(context.Background())

	require.Len(t, got, 1)
	in := got["cafe0123"]
	require.NotNil(t, in)
	assert.Equal(t, logsDir, in.LogsDir)
}

func TestDiscoverMergesSignals(t *testing.T) {
	root := t.TempDir()
	logsDir := filepath.Join(root, "amptown-abc12345", "logs")
	require.NoError(t, os.MkdirAll(logsDir, 0o755))

	sessions := &fakeSessions{names: []string{"amptown-abc12345-reviewer-alpha"}}
	d := newTestDiscoverer(sessions, []string{filepath.Join(root, "amptown-*", "logs")})

	got := d.Discover(context.Background())

	// One instance, found by both signals: the log signal enriches the
	// session-created instance instead of replacing it.
	require.Len(t, got, 1)
	in := got["abc12345"]
	require.NotNil(t, in)
	assert.Equal(t, logsDir, in.LogsDir)
	assert.Len(t, in.Agents, 6)
}

func TestDiscoverBothSignalsEmpty(t *testing.T) {
	d := newTestDiscoverer(&fakeSessions{listErr: errors.New("down")}, []string{
		filepath.Join(t.TempDir(), "amptown-*", "logs"),
	})

	assert.Empty(t, d.Discover(context.Background()))
}

func TestSortedByDisplayName(t *testing.T) {
	a := newTestInstance("aaaa1111", &fakeSessions{}, &fakePRs{})
	a.RepoPath = "/work/zeta"
	b := newTestInstance("bbbb2222", &fakeSessions{}, &fakePRs{})
	b.RepoPath = "/work/alpha"
	c := newTestInstance("cccc3333", &fakeSessions{}, &fakePRs{})

	got := Sorted(map[string]*Instance{a.ID: a, b.ID: b, c.ID: c})

	require.Len(t, got, 3)
	assert.Equal(t, "alpha", got[0].DisplayName())
	assert.Equal(t, "instance-cccc3333", got[1].DisplayName())
	assert.Equal(t, "zeta", got[2].DisplayName())
}

func TestDefaultLogPatterns(t *testing.T) {
	t.Setenv("TMPDIR", "/custom/tmp/")

	patterns := DefaultLogPatterns("amptown")

	require.Len(t, patterns, 3)
	assert.Equal(t, "/custom/tmp/amptown-*/logs", patterns[0])
	assert.Equal(t, "/tmp/amptown-*/logs", patterns[1])
	assert.Equal(t, "/var/folders/*/*/*/*/amptown-*/logs", patterns[2])
}
