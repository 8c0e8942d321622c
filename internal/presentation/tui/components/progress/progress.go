// Package progress renders the reader's scroll-depth bar.
package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the progress bar.
type Props struct {
	Percent int
	Width   int
	Color   lipgloss.Color
}

// Render draws a bar Width cells wide followed by the percentage.
func Render(p Props) string {
	percent := min(max(p.Percent, 0), 100)
	width := max(p.Width, 1)
	filled := percent * width / 100
	color := p.Color
	if color == "" {
		color = lipgloss.Color("39")
	}
	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(strings.Repeat("─", width-filled))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}
