package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/learnfeed/internal/application/usecase"
	"github.com/tesso57/learnfeed/internal/domain/engagement"
	"github.com/tesso57/learnfeed/internal/domain/learning"
)

// Reader is the open reading session.
type Reader struct {
	Item    learning.Item
	Session *engagement.Session
	// Impressions and Dwell summarize the item's time on screen in the feed.
	Impressions int
	Dwell       time.Duration
}

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session  Session
	Previous Session

	FeedList list.Model
	Viewport viewport.Model
	Activity table.Model
	Help     help.Model
	Spinner  spinner.Model
	Keys     KeyMap

	Width  int
	Height int

	Items           []learning.Item
	Read            map[string]bool
	Board           *engagement.Board
	SentinelVisible bool
	Loading         bool
	Exhausted       bool

	Reader *Reader

	Dashboard        usecase.DashboardSnapshot
	DashboardLoading bool
	PushStatus       string

	Err           error
	StatusMessage string
}
