// Package tmux is a thin client for the tmux sessions ampwatch monitors.
package tmux

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

type Client struct {
	logger *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{logger: logger}
}

// ListSessions returns the names of all active tmux sessions.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	out, err := c.tmux(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		// tmux not installed or no server running - both mean no sessions
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	var sessions []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			sessions = append(sessions, line)
		}
	}
	return sessions, nil
}

// HasSession reports whether a session with the exact name exists.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	_, err := c.tmux(ctx, "has-session", "-t", name)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit means "no such session", not a probe failure.
			return false, nil
		}
		return false, fmt.Errorf("has-session %s: %w", name, err)
	}
	return true, nil
}

// WorkingDirectory returns the current path of the session's active pane.
func (c *Client) WorkingDirectory(ctx context.Context, name string) (string, error) {
	out, err := c.tmux(ctx, "display-message", "-t", name, "-p", "#{pane_current_path}")
	if err != nil {
		return "", fmt.Errorf("working directory of %s: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) tmux(ctx context.Context, args ...string) ([]byte, error) {
	c.logger.Debug("tmux", "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}
	return out, nil
}
