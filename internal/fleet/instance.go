package fleet

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/marcin-skalski/ampwatch/internal/github"
)

// Instance is one monitored amptown fleet unit (one per repository). The
// agent roster is fixed at construction: three reviewers then three
// implementers, in stable order, so list indices stay valid across refreshes.
type Instance struct {
	ID       string
	RepoPath string
	LogsDir  string
	Agents   []*Agent

	OpenPRs   []github.PullRequest
	MergedPRs []github.PullRequest

	sessions    SessionManager
	prs         PRSource
	prefix      string
	mergedLimit int
	logger      *slog.Logger
}

var rosterNames = []struct {
	name string
	kind AgentKind
}{
	{"reviewer-alpha", Reviewer},
	{"reviewer-beta", Reviewer},
	{"reviewer-gamma", Reviewer},
	{"impl-alpha", Implementer},
	{"impl-beta", Implementer},
	{"impl-gamma", Implementer},
}

func NewInstance(id string, sessions SessionManager, prs PRSource, prefix string, mergedLimit int, logger *slog.Logger) *Instance {
	in := &Instance{
		ID:          id,
		sessions:    sessions,
		prs:         prs,
		prefix:      prefix,
		mergedLimit: mergedLimit,
		logger:      logger.With("instance", id),
	}
	for _, r := range rosterNames {
		in.Agents = append(in.Agents, newAgent(r.name, r.kind, id))
	}
	return in
}

// Refresh re-derives the instance's state. Order matters: the repo path
// resolved in this cycle is what the PR refresh runs against, so an instance
// that has never been linked to a directory skips PR refresh this cycle.
func (in *Instance) Refresh(ctx context.Context) {
	in.resolveRepoPath(ctx)
	for _, a := range in.Agents {
		a.Refresh(ctx, in.sessions, in.prefix, in.LogsDir)
	}
	in.refreshPRs(ctx)
}

// resolveRepoPath asks each agent's tmux pane for its current path and takes
// the first non-empty answer. The path is sticky: if every probe fails the
// previous value stands.
func (in *Instance) resolveRepoPath(ctx context.Context) {
	for _, a := range in.Agents {
		dir, err := in.sessions.WorkingDirectory(ctx, a.SessionName(in.prefix))
		if err != nil || dir == "" {
			continue
		}
		in.RepoPath = dir
		return
	}
}

// refreshPRs updates the two PR lists independently. A failure of either gh
// call leaves that list (and only that list) at its previous value.
func (in *Instance) refreshPRs(ctx context.Context) {
	if in.RepoPath == "" {
		return
	}

	if open, err := in.prs.ListOpen(ctx, in.RepoPath); err == nil {
		in.OpenPRs = open
	} else {
		in.logger.Debug("open PR refresh failed", "err", err)
	}

	if merged, err := in.prs.ListMerged(ctx, in.RepoPath, in.mergedLimit); err == nil {
		in.MergedPRs = merged
	} else {
		in.logger.Debug("merged PR refresh failed", "err", err)
	}
}

// RunningAgentCount reports how many agents have a live tmux session.
func (in *Instance) RunningAgentCount() int {
	count := 0
	for _, a := range in.Agents {
		if a.IsRunning {
			count++
		}
	}
	return count
}

// DisplayName is the stable, non-empty sort and display key: the last
// segment of the repo path when known, otherwise a name derived from the id.
func (in *Instance) DisplayName() string {
	if in.RepoPath != "" {
		return filepath.Base(in.RepoPath)
	}
	return "instance-" + in.ID
}
