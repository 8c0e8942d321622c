package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/presentation/tui/textutil"
)

const placeholderParagraphs = 12

const placeholderText = "This item is hosted at its original source. The excerpt below is a stand-in " +
	"body so that time spent and scroll depth can be measured while you read. Scroll to the end " +
	"to record a full read, or press the browser key to visit the original."

// ImpressionNote summarizes earlier dwell on an item, or returns "" when it
// was never on screen long enough to count.
func ImpressionNote(count int, dwell time.Duration) string {
	if count <= 0 {
		return ""
	}
	times := "times"
	if count == 1 {
		times = "time"
	}
	return fmt.Sprintf(" · seen %d %s, %s in feed", count, times, textutil.Seconds(int(dwell.Round(time.Second)/time.Second)))
}

// ReaderMarkdown builds the reader document for item.
func ReaderMarkdown(item learning.Item) string {
	var b strings.Builder
	if item.Topic != "" {
		fmt.Fprintf(&b, "`%s` · %s\n\n", item.Topic, item.ReadTimeLabel())
	} else {
		fmt.Fprintf(&b, "%s\n\n", item.ReadTimeLabel())
	}
	fmt.Fprintf(&b, "# %s\n\n", strings.TrimSpace(item.Title))
	if item.URL != "" {
		fmt.Fprintf(&b, "Original source: <%s>\n\n", item.URL)
	}
	b.WriteString("---\n\n")
	for range placeholderParagraphs {
		b.WriteString(placeholderText)
		b.WriteString("\n\n")
	}
	b.WriteString("---\n\n*End of content*\n")
	return b.String()
}

// RenderMarkdown renders md for a terminal of the given width. It falls back
// to the raw markdown when rendering fails.
func RenderMarkdown(md string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle("dark")}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
