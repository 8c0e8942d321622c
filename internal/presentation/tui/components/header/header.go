// Package header provides the module header component.
package header

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Visible bool
	Link    string
	Topic   string
	// Progress replaces the link line when set, e.g. a reader progress bar.
	Progress string
}

// Render renders the header component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	first := "🔗 " + p.Link
	if p.Link == "" {
		first = "🔗 (no source link)"
	}
	if p.Progress != "" {
		first = p.Progress
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(first + "\n🏷️  " + p.Topic)
}
