// Package mainview provides the main content area component.
package mainview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	Header string
	Body   string
	// Status is pinned below the body, e.g. a loading or end-of-feed marker.
	Status string
}

// Render renders the main view component.
func Render(p Props) string {
	mainStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1)

	parts := make([]string, 0, 3)
	for _, part := range []string{p.Header, p.Body, p.Status} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return mainStyle.Render(strings.Join(parts, "\n"))
}
