package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current slide.
//
//nolint:gocritic // hugeParam ignored
func (m Model) View() string {
	header := titleStyle.Render(m.Title)
	if m.Subtitle != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, subtitleStyle.Render(m.Subtitle))
	}

	status := fmt.Sprintf("%d/%d", m.State.Index+1, m.State.Length)
	if m.Nav.AutoPlaying() {
		status += "  ▶ autoplay"
	}

	slide := frameStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		sourceStyle.Render(m.Nav.Image(m.State.Index)),
		"",
		status+"  "+m.State.Direction.String(),
	))

	parts := []string{header, "", slide, m.dots()}
	if m.Err != nil {
		parts = append(parts, errorStyle.Render(m.Err.Error()))
	}
	parts = append(parts, "", m.Help.View(m.Keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) dots() string {
	var s strings.Builder
	for i := range m.State.Length {
		switch {
		case i == m.State.Index:
			s.WriteString(currentDotStyle.Render("●"))
		case slices.Contains(m.State.Loaded, i):
			s.WriteString(loadedDotStyle.Render("◉"))
		default:
			s.WriteString(pendingDotStyle.Render("○"))
		}
		if i < m.State.Length-1 {
			s.WriteString(" ")
		}
	}
	return s.String()
}
