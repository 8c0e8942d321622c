// Package sidebar provides the sidebar component.
package sidebar

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the sidebar component.
type Props struct {
	View   string
	Width  int
	Height int
	Title  string
	Accent lipgloss.Color
}

// Render renders the sidebar component. A zero width hides it.
func Render(p Props) string {
	if p.Width <= 0 {
		return ""
	}
	accent := p.Accent
	if accent == "" {
		accent = lipgloss.Color("205")
	}

	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color("63"))

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingBottom(1).
		Foreground(accent)

	return sidebarStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(p.Title),
		lipgloss.NewStyle().PaddingLeft(1).Render(p.View),
	))
}
