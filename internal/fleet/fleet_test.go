package fleet

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/marcin-skalski/ampwatch/internal/github"
)

// fakeSessions implements SessionManager against fixed data.
type fakeSessions struct {
	names   []string
	listErr error

	existing map[string]bool
	probeErr error

	dirs map[string]string
}

func (f *fakeSessions) ListSessions(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.names, nil
}

func (f *fakeSessions) HasSession(ctx context.Context, name string) (bool, error) {
	if f.probeErr != nil {
		return false, f.probeErr
	}
	return f.existing[name], nil
}

func (f *fakeSessions) WorkingDirectory(ctx context.Context, name string) (string, error) {
	if dir, ok := f.dirs[name]; ok {
		return dir, nil
	}
	return "", errors.New("no such session")
}

// fakePRs implements PRSource against fixed data.
type fakePRs struct {
	open      []github.PullRequest
	openErr   error
	merged    []github.PullRequest
	mergedErr error

	openCalls   int
	mergedCalls int
	lastDir     string
	lastLimit   int
}

func (f *fakePRs) ListOpen(ctx context.Context, dir string) ([]github.PullRequest, error) {
	f.openCalls++
	f.lastDir = dir
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.open, nil
}

func (f *fakePRs) ListMerged(ctx context.Context, dir string, limit int) ([]github.PullRequest, error) {
	f.mergedCalls++
	f.lastDir = dir
	f.lastLimit = limit
	if f.mergedErr != nil {
		return nil, f.mergedErr
	}
	return f.merged, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
