package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcin-skalski/ampwatch/internal/amp"
	"github.com/marcin-skalski/ampwatch/internal/config"
	"github.com/marcin-skalski/ampwatch/internal/fleet"
	"github.com/marcin-skalski/ampwatch/internal/github"
	"github.com/marcin-skalski/ampwatch/internal/logging"
	"github.com/marcin-skalski/ampwatch/internal/tmux"
	"github.com/marcin-skalski/ampwatch/internal/tui"
	"github.com/mattn/go-isatty"
)

func main() {
	configPath := flag.String("config", "ampwatch.yaml", "path to config file")
	noTUI := flag.Bool("no-tui", false, "print one fleet snapshot instead of the dashboard")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Auto-detect TUI capability
	enableTUI := !*noTUI && os.Getenv("AMPWATCH_TUI") != "0" &&
		isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	logger, err := logging.Setup(cfg.LogFile, cfg.Log.Level, enableTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseFile()

	sessions := tmux.NewClient(logger)
	gh := github.NewClient(logger)
	summarizer := amp.NewClient(cfg.Amp.Command, logger)

	d := fleet.NewDiscoverer(sessions, gh, cfg.SessionPrefix, cfg.MergedPRLimit, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !enableTUI {
		logger.Info("ampwatch snapshot (headless)", "prefix", cfg.SessionPrefix)
		printSnapshot(ctx, d)
		return
	}

	logger.Info("ampwatch starting", "prefix", cfg.SessionPrefix, "refresh", cfg.RefreshInterval)

	m := tui.NewModel(ctx, d, summarizer, cfg.RefreshInterval)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}

// printSnapshot runs one discovery+refresh pass and prints a plain summary.
func printSnapshot(ctx context.Context, d *fleet.Discoverer) {
	instances := fleet.Sorted(d.Discover(ctx))
	if len(instances) == 0 {
		fmt.Println("no amptown instances found")
		return
	}

	for _, in := range instances {
		in.Refresh(ctx)
		fmt.Printf("%s (%d/%d running, %d open PRs, %d merged PRs)\n",
			in.DisplayName(), in.RunningAgentCount(), len(in.Agents),
			len(in.OpenPRs), len(in.MergedPRs))
		for _, a := range in.Agents {
			status := "stopped"
			if a.IsRunning {
				status = "running"
			}
			fmt.Printf("  %-16s %-11s iter=%-3d %s\n", a.Name, status, a.Iterations, a.LastActivity)
		}
	}
}
