// Package layout composes the sidebar, main area and footer.
package layout

import "github.com/charmbracelet/lipgloss"

// Props defines the rendered parts of the screen.
type Props struct {
	Sidebar string
	Main    string
	Footer  string
}

// Render joins the sidebar and main area side by side above the footer.
func Render(p Props) string {
	body := p.Main
	if p.Sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, p.Sidebar, p.Main)
	}
	if p.Footer == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, p.Footer)
}
