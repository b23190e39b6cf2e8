// Package fleet discovers running amptown instances and derives the status
// of their agents from tmux sessions, log files and the gh CLI.
package fleet

import (
	"context"

	"github.com/marcin-skalski/ampwatch/internal/github"
)

// SessionManager is the contract fleet needs from tmux.
type SessionManager interface {
	ListSessions(ctx context.Context) ([]string, error)
	HasSession(ctx context.Context, name string) (bool, error)
	WorkingDirectory(ctx context.Context, name string) (string, error)
}

// PRSource is the contract fleet needs from the source-control host.
type PRSource interface {
	ListOpen(ctx context.Context, dir string) ([]github.PullRequest, error)
	ListMerged(ctx context.Context, dir string, limit int) ([]github.PullRequest, error)
}
