// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SingleLine collapses whitespace into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate trims a string to the given width with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "...")
}

// Line flattens text to one line and fits it into width cells.
func Line(text string, width int) string {
	return Truncate(SingleLine(text), width)
}

// Seconds formats a whole number of seconds as "45s" or "2m05s".
func Seconds(n int) string {
	if n < 0 {
		n = 0
	}
	if n < 60 {
		return fmt.Sprintf("%ds", n)
	}
	return fmt.Sprintf("%dm%02ds", n/60, n%60)
}
