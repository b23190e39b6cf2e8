package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorOpen   = lipgloss.Color("46")  // green
	colorMerged = lipgloss.Color("135") // purple
	colorClosed = lipgloss.Color("196") // red

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	liveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	instanceActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("220"))

	instanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	reviewerPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("33"))

	implementerPanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("135"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	stoppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	selectedRowStyle = lipgloss.NewStyle().
				Reverse(true)

	prNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	activityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("220")).
			Padding(0, 1)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))
)

func prStateColor(state string) lipgloss.Color {
	switch state {
	case "OPEN":
		return colorOpen
	case "MERGED":
		return colorMerged
	case "CLOSED":
		return colorClosed
	default:
		return lipgloss.Color("252")
	}
}

func modalWidth(width int) int {
	return width * 4 / 5
}

func modalHeight(height int) int {
	return height * 3 / 5
}
