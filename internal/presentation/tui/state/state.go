// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/learnfeed/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	FeedView Session = iota
	ReaderView
	DashboardView
	QuitView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	UpPage    key.Binding
	DownPage  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Open      key.Binding
	Back      key.Binding
	Quit      key.Binding
	Dashboard key.Binding
	Browser   key.Binding
	Refresh   key.Binding
	Help      key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Back, k.Open, k.Dashboard}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.UpPage, k.DownPage},
		{k.Open, k.Back, k.Browser},
		{k.Dashboard, k.Refresh, k.Help, k.Quit},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:        binding(cfg.Up, "up"),
		Down:      binding(cfg.Down, "down"),
		UpPage:    binding(cfg.UpPage, "pgup"),
		DownPage:  binding(cfg.DownPage, "pgdn"),
		Top:       binding(cfg.Top, "top"),
		Bottom:    binding(cfg.Bottom, "bottom"),
		Open:      binding(cfg.Open, "read"),
		Back:      binding(cfg.Back, "back"),
		Quit:      binding(cfg.Quit, "quit"),
		Dashboard: binding(cfg.Dashboard, "dashboard"),
		Browser:   binding(cfg.Browser, "open source"),
		Refresh:   binding(cfg.Refresh, "refresh"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, desc),
	)
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
