package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00ADD8")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(8)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00ADD8")).
			Padding(0, 1)

	// Status color styles
	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	statusDefaultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFF00"))

	statusFailedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF0000"))

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// entryStatus classifies a history entry for display
func entryStatus(e Entry) string {
	switch {
	case e.Err != nil:
		return "failed"
	case e.Resolution != nil && e.Resolution.SkinURL() == "":
		return "default"
	default:
		return "ok"
	}
}

// getStatusStyle returns the style for a given status
func getStatusStyle(status string) lipgloss.Style {
	switch status {
	case "ok":
		return statusOKStyle
	case "default":
		return statusDefaultStyle
	case "failed":
		return statusFailedStyle
	default:
		return lipgloss.NewStyle()
	}
}

// getStatusIndicator returns the status indicator symbol
func getStatusIndicator(status string) string {
	switch status {
	case "ok", "default":
		return "●"
	case "failed":
		return "✗"
	default:
		return "?"
	}
}
