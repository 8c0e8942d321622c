// Package listview provides list item delegates for the view layer.
package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FeedItem is what FeedDelegate knows how to render.
type FeedItem interface {
	list.Item
	Title() string
	Description() string
	IsRead() bool
}

// FeedDelegate renders a feed row as a title line over a topic line.
type FeedDelegate struct {
	Styles     list.DefaultItemStyles
	TopicColor lipgloss.Color
}

// NewFeedDelegate creates a new FeedDelegate.
func NewFeedDelegate(topicColor lipgloss.Color) *FeedDelegate {
	return &FeedDelegate{
		Styles:     withItemPadding(list.NewDefaultItemStyles()),
		TopicColor: topicColor,
	}
}

// Height returns the height of the item.
func (d *FeedDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d *FeedDelegate) Spacing() int {
	return 1
}

// Update handles messages for the delegate.
func (d *FeedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *FeedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(FeedItem)
	if !ok {
		return
	}

	titleStyle, descStyle := itemStyles(d.Styles, m, index)
	title := truncateItemText(m, titleStyle, i.Title())
	desc := truncateItemText(m, descStyle, i.Description())

	if index != m.Index() {
		desc = lipgloss.NewStyle().Foreground(d.TopicColor).Render(desc)
	}
	if i.IsRead() {
		title = lipgloss.NewStyle().Faint(true).Render(title)
		desc = lipgloss.NewStyle().Faint(true).Render(desc)
	}

	renderItemText(w, titleStyle, title)
	_, _ = io.WriteString(w, "\n")
	renderItemText(w, descStyle, desc)
}
