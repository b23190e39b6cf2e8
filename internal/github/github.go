// Package github queries pull requests through the gh CLI.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// prFields is the field set requested from gh for every list call.
const prFields = "number,title,state,author,createdAt,headRefName"

type Client struct {
	logger *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	return &Client{logger: logger}
}

// PullRequest is the shape returned by `gh pr list --json`. Unknown fields
// in the gh output are ignored; values are replaced wholesale on refresh.
type PullRequest struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	Author    Author `json:"author"`
	CreatedAt string `json:"createdAt"`
	HeadRef   string `json:"headRefName"`
}

type Author struct {
	Login string `json:"login"`
}

// ListOpen returns the currently open PRs of the repository at dir.
func (c *Client) ListOpen(ctx context.Context, dir string) ([]PullRequest, error) {
	return c.list(ctx, dir, "pr", "list", "--json", prFields)
}

// ListMerged returns the most recently merged PRs of the repository at dir.
func (c *Client) ListMerged(ctx context.Context, dir string, limit int) ([]PullRequest, error) {
	return c.list(ctx, dir, "pr", "list",
		"--state", "merged",
		"--limit", strconv.Itoa(limit),
		"--json", prFields)
}

func (c *Client) list(ctx context.Context, dir string, args ...string) ([]PullRequest, error) {
	out, err := c.gh(ctx, dir, args...)
	if err != nil {
		return nil, fmt.Errorf("list PRs: %w", err)
	}

	var prs []PullRequest
	if err := json.Unmarshal(out, &prs); err != nil {
		return nil, fmt.Errorf("parse PRs: %w", err)
	}
	return prs, nil
}

func (c *Client) gh(ctx context.Context, dir string, args ...string) ([]byte, error) {
	c.logger.Debug("gh", "args", strings.Join(args, " "), "dir", dir)
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		return nil, err
	}
	return out, nil
}
