package fleet

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Log directory ids only need 6 characters; a stopped instance leaves its
// logs behind long after the strict session grammar stops matching anything.
const minLogDirIDLen = 6

// Discoverer locates instances without any central registry by correlating
// two independent signals: active tmux session names and on-disk log
// directories. Either signal may be entirely unavailable.
type Discoverer struct {
	sessions    SessionManager
	prs         PRSource
	prefix      string
	mergedLimit int
	logger      *slog.Logger

	// LogPatterns are the glob patterns scanned for `<prefix>-<id>/logs`
	// directories. Defaults cover the platform temp-root conventions.
	LogPatterns []string
}

func NewDiscoverer(sessions SessionManager, prs PRSource, prefix string, mergedLimit int, logger *slog.Logger) *Discoverer {
	return &Discoverer{
		sessions:    sessions,
		prs:         prs,
		prefix:      prefix,
		mergedLimit: mergedLimit,
		logger:      logger,
		LogPatterns: DefaultLogPatterns(prefix),
	}
}

// DefaultLogPatterns returns the temp-root conventions amptown writes logs
// under: $TMPDIR if set, the generic /tmp, and the macOS per-user cache root.
func DefaultLogPatterns(prefix string) []string {
	var patterns []string
	if tmpdir := os.Getenv("TMPDIR"); tmpdir != "" {
		patterns = append(patterns, filepath.Join(strings.TrimRight(tmpdir, "/"), prefix+"-*", "logs"))
	}
	patterns = append(patterns,
		"/tmp/"+prefix+"-*/logs",
		"/var/folders/*/*/*/*/"+prefix+"-*/logs",
	)
	return patterns
}

// Discover enumerates all currently known instances, keyed by id. The
// returned map has no ordering; callers impose display order themselves.
func (d *Discoverer) Discover(ctx context.Context) map[string]*Instance {
	instances := make(map[string]*Instance)
	d.discoverFromSessions(ctx, instances)
	d.discoverFromLogs(instances)
	return instances
}

// discoverFromSessions registers an instance for every tmux session matching
// the naming grammar. Create-if-absent only; never overwrites.
func (d *Discoverer) discoverFromSessions(ctx context.Context, instances map[string]*Instance) {
	names, err := d.sessions.ListSessions(ctx)
	if err != nil {
		// tmux missing or no server running; the log signal may still hit.
		d.logger.Debug("session scan unavailable", "err", err)
		return
	}

	for _, name := range names {
		id, _, ok := ParseSessionName(d.prefix, name)
		if !ok {
			continue
		}
		if _, exists := instances[id]; !exists {
			instances[id] = d.newInstance(id)
		}
	}
}

// discoverFromLogs registers instances for on-disk log directories and sets
// LogsDir. This signal is authoritative for LogsDir even when the instance
// was already found via its sessions.
func (d *Discoverer) discoverFromLogs(instances map[string]*Instance) {
	for _, pattern := range d.LogPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}

			// .../<prefix>-<id>/logs
			dirName := filepath.Base(filepath.Dir(match))
			id, found := strings.CutPrefix(dirName, d.prefix+"-")
			if !found || len(id) < minLogDirIDLen {
				continue
			}

			in, exists := instances[id]
			if !exists {
				in = d.newInstance(id)
				instances[id] = in
			}
			in.LogsDir = match
		}
	}
}

func (d *Discoverer) newInstance(id string) *Instance {
	return NewInstance(id, d.sessions, d.prs, d.prefix, d.mergedLimit, d.logger)
}

// Sorted flattens a discovery result into display order (by display name).
func Sorted(instances map[string]*Instance) []*Instance {
	out := make([]*Instance, 0, len(instances))
	for _, in := range instances {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out
}
