// Package amp runs one-shot prompts through the amp CLI.
package amp

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

type Client struct {
	command string
	logger  *slog.Logger
}

func NewClient(command string, logger *slog.Logger) *Client {
	if command == "" {
		command = "amp"
	}
	return &Client{command: command, logger: logger}
}

// Summarize executes the prompt in dir and returns amp's stdout. The call
// runs to completion; no timeout is imposed beyond amp's own behavior.
func (c *Client) Summarize(ctx context.Context, dir, prompt string) (string, error) {
	start := time.Now()
	c.logger.Info("amp summarize starting", "dir", dir)

	cmd := exec.CommandContext(ctx, c.command,
		"--dangerously-allow-all",
		"--no-ide",
		"-x", prompt)
	cmd.Dir = dir

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("amp: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("run %s: %w", c.command, err)
	}

	c.logger.Info("amp summarize finished", "dir", dir, "duration", time.Since(start).Round(time.Second))
	return string(out), nil
}
