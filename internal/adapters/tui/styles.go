package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Private brand colors.
	colorSand  = lipgloss.Color("#D4A574")
	colorNile  = lipgloss.Color("#1F6F8B")
	colorSlate = lipgloss.Color("#667085")
	colorWhite = lipgloss.Color("#FFFFFF")

	// Header Styles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(colorNile).
			Foreground(colorWhite)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			PaddingLeft(1)

	// Slide Styles.
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSand).
			Padding(1, 2)

	sourceStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	// Indicator Styles.
	currentDotStyle = lipgloss.NewStyle().
			Foreground(colorSand).
			Bold(true)

	loadedDotStyle = lipgloss.NewStyle().
			Foreground(colorNile)

	pendingDotStyle = lipgloss.NewStyle().
			Foreground(colorSlate).
			Faint(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // Red
)
