package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcin-skalski/ampwatch/internal/fleet"
	"github.com/marcin-skalski/ampwatch/internal/github"
	"github.com/mattn/go-runewidth"
)

func (m Model) View() string {
	if m.showModal {
		return m.renderModal()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderInstanceStrip())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	in := m.currentInstance()
	openCount, mergedCount := 0, 0
	if in != nil {
		openCount = len(in.OpenPRs)
		mergedCount = len(in.MergedPRs)
	}

	tabs := []string{
		"Agents",
		fmt.Sprintf("Open PRs (%d)", openCount),
		fmt.Sprintf("Merged PRs (%d)", mergedCount),
	}

	parts := make([]string, 0, len(tabs))
	for i, label := range tabs {
		marker := "○"
		style := tabInactiveStyle
		if Tab(i) == m.tab {
			marker = "●"
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf(" %s %s ", label, marker)))
	}

	header := m.spinner.View() + " " +
		titleStyle.Render("AMPWATCH ") +
		liveStyle.Render("LIVE") +
		" │" + strings.Join(parts, "│")

	return panelStyle.Width(m.width - 2).Render(header)
}

func (m Model) renderInstanceStrip() string {
	if len(m.instances) == 0 {
		return panelStyle.Width(m.width - 2).Render(emptyStyle.Render("No instances running"))
	}

	parts := make([]string, 0, len(m.instances))
	for i, in := range m.instances {
		label := fmt.Sprintf(" %s (%d/%d) ", in.DisplayName(), in.RunningAgentCount(), len(in.Agents))
		if i == m.selected {
			parts = append(parts, instanceActiveStyle.Render(label))
		} else {
			parts = append(parts, instanceStyle.Render(label))
		}
	}

	strip := fmt.Sprintf("Instances (%d):", len(m.instances)) + strings.Join(parts, "│")
	return panelStyle.Width(m.width - 2).Render(strip)
}

func (m Model) renderContent() string {
	in := m.currentInstance()
	if in == nil {
		return panelStyle.Width(m.width - 2).Render(
			emptyStyle.Render("No amptown instances found. Start one with: amptown <repo-path>"))
	}

	switch m.tab {
	case TabAgents:
		return m.renderAgents(in)
	case TabOpenPRs:
		return m.renderPRs(in.OpenPRs, "Open Pull Requests")
	case TabMergedPRs:
		return m.renderPRs(in.MergedPRs, "Merged Pull Requests")
	}
	return ""
}

func (m Model) renderAgents(in *fleet.Instance) string {
	half := (m.width - 6) / 2

	var reviewers, implementers []string
	row := 0
	for _, a := range in.Agents {
		line := m.renderAgentLine(a, row == m.agentCursor)
		if a.Kind == fleet.Reviewer {
			reviewers = append(reviewers, line)
		} else {
			implementers = append(implementers, line)
		}
		row++
	}

	left := reviewerPanelStyle.Width(half).Render(
		titleStyle.Render("Reviewers") + "\n" + strings.Join(reviewers, "\n"))
	right := implementerPanelStyle.Width(half).Render(
		titleStyle.Render("Implementers") + "\n" + strings.Join(implementers, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderAgentLine(a *fleet.Agent, selected bool) string {
	icon := stoppedStyle.Render("○")
	if a.IsRunning {
		icon = runningStyle.Render("●")
	}

	name := a.Name
	if selected {
		name = selectedRowStyle.Render(name)
	}

	line := fmt.Sprintf("%s %s (iter: %d)", icon, name, a.Iterations)
	if a.LastActivity != "" {
		line += "\n  " + activityStyle.Render(runewidth.Truncate(a.LastActivity, m.width/2-8, "..."))
	}
	return line
}

func (m Model) renderPRs(prs []github.PullRequest, title string) string {
	if len(prs) == 0 {
		return panelStyle.Width(m.width - 2).Render(
			titleStyle.Render(title) + "\n" + emptyStyle.Render("  (none)"))
	}

	lines := make([]string, 0, len(prs)+1)
	lines = append(lines, titleStyle.Render(title))
	for i, pr := range prs {
		stateStyle := lipgloss.NewStyle().Foreground(prStateColor(pr.State))
		prTitle := runewidth.Truncate(pr.Title, m.width-24, "...")
		line := fmt.Sprintf("%s %s %s",
			prNumberStyle.Render(fmt.Sprintf("#%-4d", pr.Number)),
			stateStyle.Render(fmt.Sprintf("%-8s", pr.State)),
			prTitle)
		if i == m.prCursor {
			line = selectedRowStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return panelStyle.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	var text string
	switch {
	case len(m.instances) > 1:
		text = "q: Quit │ Tab: View │ ←→: Instance │ ↑↓: Navigate │ Enter: Summarize │ r: Refresh"
	case m.tab == TabAgents:
		text = "q: Quit │ Tab: Switch view │ ↑↓: Navigate │ r: Refresh"
	default:
		text = "q: Quit │ Tab: Switch view │ ↑↓: Navigate │ Enter: Summarize PR │ r: Refresh"
	}
	if !m.lastRefresh.IsZero() {
		text += " │ Updated " + m.lastRefresh.Format("15:04:05")
	}
	return footerStyle.Render(text)
}

func (m Model) renderModal() string {
	title := " PR Summary (Press Esc to close) "
	if m.modalLoading {
		title = fmt.Sprintf(" %s Summarizing PR #%d... (Esc hides) ", m.spinner.View(), m.modalPR)
	}

	box := modalStyle.Width(modalWidth(m.width)).Render(
		modalTitleStyle.Render(title) + "\n\n" + m.viewport.View())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
