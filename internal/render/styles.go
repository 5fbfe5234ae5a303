package render

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffcc66"))

	CaptionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	AxisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// Caption formats a snapshot heading like the reference figures: the step's
// time label over axis names.
func Caption(label string) string {
	return TitleStyle.Render(label) + "\n" +
		AxisStyle.Render("Distance (km) →, Depth (km) ↓")
}
