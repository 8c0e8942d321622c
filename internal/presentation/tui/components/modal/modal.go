// Package modal renders centered dialogs over the whole screen.
package modal

import "github.com/charmbracelet/lipgloss"

// Kind identifies the dialog.
type Kind int

const (
	Quit Kind = iota
	Help
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Body    string
	Width   int
	Height  int
}

// Render renders the modal centered in the available area.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	border := lipgloss.Color("63")
	if p.Kind == Quit {
		border = lipgloss.Color("205")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Render(p.Body)
	if p.Width <= 0 || p.Height <= 0 {
		return box
	}
	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box)
}
