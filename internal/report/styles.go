package report

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	greenColor   = lipgloss.Color("#10B981")
	amberColor   = lipgloss.Color("#F59E0B")
	redColor     = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#9CA3AF")
	borderColor  = lipgloss.Color("#374151")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)

	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	warnStyle = lipgloss.NewStyle().Foreground(amberColor).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(greenColor)
	badStyle  = lipgloss.NewStyle().Foreground(redColor)

	headerStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	barStyle    = lipgloss.NewStyle().Foreground(greenColor)
)

// CategoryStyle colours a category label.
func CategoryStyle(category string) lipgloss.Style {
	switch category {
	case "GC-rich":
		return lipgloss.NewStyle().Foreground(primaryColor)
	case "AT-rich":
		return lipgloss.NewStyle().Foreground(amberColor)
	default:
		return lipgloss.NewStyle().Foreground(greenColor)
	}
}
