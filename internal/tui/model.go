package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcin-skalski/ampwatch/internal/fleet"
	"github.com/marcin-skalski/ampwatch/internal/github"
)

// Summarizer produces a natural-language summary by running a prompt inside
// a repository directory.
type Summarizer interface {
	Summarize(ctx context.Context, dir, prompt string) (string, error)
}

type Tab int

const (
	TabAgents Tab = iota
	TabOpenPRs
	TabMergedPRs
)

const tabCount = 3

type (
	refreshMsg time.Time

	// summaryMsg carries the result of a summarization run back onto the
	// update loop. It is delivered even if the modal was dismissed while the
	// run was in flight; the stored text is simply not shown until the modal
	// is opened again.
	summaryMsg struct {
		prNumber int
		text     string
	}
)

type Model struct {
	ctx             context.Context
	discoverer      *fleet.Discoverer
	summarizer      Summarizer
	refreshInterval time.Duration

	instances   []*fleet.Instance
	selected    int
	tab         Tab
	agentCursor int
	prCursor    int
	lastRefresh time.Time

	showModal    bool
	modalLoading bool
	modalContent string
	modalPR      int

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
}

func NewModel(ctx context.Context, d *fleet.Discoverer, s Summarizer, refreshInterval time.Duration) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	m := Model{
		ctx:             ctx,
		discoverer:      d,
		summarizer:      s,
		refreshInterval: refreshInterval,
		spinner:         sp,
		viewport:        viewport.New(80, 20),
		width:           80,
		height:          24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshTick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = modalWidth(m.width)
		m.viewport.Height = modalHeight(m.height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case refreshMsg:
		m.refresh()
		return m, m.refreshTick()

	case summaryMsg:
		m.modalContent = msg.text
		m.modalLoading = false
		m.viewport.SetContent(msg.text)
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if m.showModal {
			switch msg.String() {
			case "esc", "enter", "q":
				// Dismiss hides the modal only; an in-flight summary keeps
				// running and its result is still stored on arrival.
				m.showModal = false
				return m, nil
			default:
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.nextTab()
		case "shift+tab":
			m.prevTab()
		case "down", "j":
			m.nextItem()
		case "up", "k":
			m.prevItem()
		case "right", "l":
			m.nextInstance()
		case "left", "h":
			m.prevInstance()
		case "enter":
			if m.tab != TabAgents {
				return m, m.summarizeCmd()
			}
		case "r":
			m.refresh()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) refreshTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// refresh rebuilds the fleet snapshot wholesale: rediscover, sort by display
// name, refresh each instance in turn, then clamp the selection index. The
// external calls run synchronously on the update loop; the low cadence makes
// the stall acceptable.
func (m *Model) refresh() {
	discovered := m.discoverer.Discover(m.ctx)
	instances := fleet.Sorted(discovered)
	for _, in := range instances {
		in.Refresh(m.ctx)
	}
	m.instances = instances

	if m.selected >= len(m.instances) {
		m.selected = len(m.instances) - 1
		if m.selected < 0 {
			m.selected = 0
		}
	}
	m.lastRefresh = time.Now()
}

func (m *Model) currentInstance() *fleet.Instance {
	if m.selected < 0 || m.selected >= len(m.instances) {
		return nil
	}
	return m.instances[m.selected]
}

func (m *Model) nextTab() {
	m.tab = (m.tab + 1) % tabCount
	m.prCursor = 0
}

func (m *Model) prevTab() {
	m.tab = (m.tab + tabCount - 1) % tabCount
	m.prCursor = 0
}

func (m *Model) nextInstance() {
	if len(m.instances) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.instances)
	m.prCursor = 0
}

func (m *Model) prevInstance() {
	if len(m.instances) == 0 {
		return
	}
	if m.selected == 0 {
		m.selected = len(m.instances) - 1
	} else {
		m.selected--
	}
	m.prCursor = 0
}

// activeListLen is recomputed against the current instance and tab before
// every cursor move, so a cursor left over from another list wraps sanely.
func (m *Model) activeListLen() int {
	in := m.currentInstance()
	if in == nil {
		return 0
	}
	switch m.tab {
	case TabAgents:
		return len(in.Agents)
	case TabOpenPRs:
		return len(in.OpenPRs)
	case TabMergedPRs:
		return len(in.MergedPRs)
	}
	return 0
}

func (m *Model) cursor() *int {
	if m.tab == TabAgents {
		return &m.agentCursor
	}
	return &m.prCursor
}

func (m *Model) nextItem() {
	n := m.activeListLen()
	if n == 0 {
		return
	}
	c := m.cursor()
	*c = (*c + 1) % n
}

func (m *Model) prevItem() {
	n := m.activeListLen()
	if n == 0 {
		return
	}
	c := m.cursor()
	if *c == 0 || *c >= n {
		*c = n - 1
	} else {
		*c--
	}
}

func (m *Model) selectedPR() *github.PullRequest {
	in := m.currentInstance()
	if in == nil {
		return nil
	}
	switch m.tab {
	case TabOpenPRs:
		if m.prCursor < len(in.OpenPRs) {
			return &in.OpenPRs[m.prCursor]
		}
	case TabMergedPRs:
		if m.prCursor < len(in.MergedPRs) {
			return &in.MergedPRs[m.prCursor]
		}
	}
	return nil
}

func summaryPrompt(prNumber int) string {
	return fmt.Sprintf(
		"Summarize PR #%d in this repository. Include: what changed, why, and any concerns. Be concise.",
		prNumber)
}

// summarizeCmd captures the selected PR and repo path at trigger time, opens
// the modal with a loading placeholder, and hands the slow amp call to a
// bubbletea command so the update loop stays responsive. Returns nil (no
// modal) when nothing is selected or the instance has no known repo path.
func (m *Model) summarizeCmd() tea.Cmd {
	pr := m.selectedPR()
	if pr == nil {
		return nil
	}
	in := m.currentInstance()
	if in == nil || in.RepoPath == "" {
		return nil
	}

	number := pr.Number
	dir := in.RepoPath

	m.showModal = true
	m.modalLoading = true
	m.modalPR = number
	m.modalContent = fmt.Sprintf(
		"Loading summary for PR #%d...\n\nPlease wait, amp is analyzing the PR.", number)
	m.viewport.SetContent(m.modalContent)
	m.viewport.GotoTop()

	ctx := m.ctx
	summarizer := m.summarizer
	return func() tea.Msg {
		text, err := summarizer.Summarize(ctx, dir, summaryPrompt(number))
		if err != nil {
			text = fmt.Sprintf("Error summarizing PR #%d:\n%v", number, err)
		}
		return summaryMsg{prNumber: number, text: text}
	}
}
