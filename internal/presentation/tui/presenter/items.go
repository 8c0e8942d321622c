// Package presenter builds view models for the TUI.
package presenter

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/learnfeed/internal/domain/learning"
)

// Item is a view model for feed rows.
type Item struct {
	ID        string
	TitleText string
	Topic     string
	Link      string
	ReadTime  string
	Score     string
	Read      bool
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// Description returns the topic, the read-time hint and the ranking score
// when the backend sent one.
func (i *Item) Description() string {
	parts := make([]string, 0, 3)
	if i.Topic != "" {
		parts = append(parts, i.Topic)
	}
	parts = append(parts, i.ReadTime)
	if i.Score != "" {
		parts = append(parts, "Score: "+i.Score)
	}
	return strings.Join(parts, " · ")
}

// IsRead reports whether the item was opened before.
func (i *Item) IsRead() bool { return i.Read }

// NewItem builds the view model for one feed item.
func NewItem(it learning.Item, read bool) *Item {
	return &Item{
		ID:        it.ID,
		TitleText: it.Title,
		Topic:     it.Topic,
		Link:      it.URL,
		ReadTime:  it.ReadTimeLabel(),
		Score:     scoreLabel(it.Score),
		Read:      read,
	}
}

func scoreLabel(score *float64) string {
	if score == nil {
		return ""
	}
	return FormatScore(*score)
}

// BuildFeedItems builds list items in feed order.
func BuildFeedItems(items []learning.Item, read map[string]bool) []list.Item {
	result := make([]list.Item, len(items))
	for i, it := range items {
		result[i] = NewItem(it, read[it.ID])
	}
	return result
}

// ApplyFeedList replaces the list rows and keeps the cursor where it was.
func ApplyFeedList(model *list.Model, items []learning.Item, read map[string]bool) tea.Cmd {
	index := model.Index()
	cmd := model.SetItems(BuildFeedItems(items, read))
	if index < len(items) {
		model.Select(index)
	}
	return cmd
}
