// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/learnfeed/internal/application/usecase"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/presentation/tui/intent"
	"github.com/tesso57/learnfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/learnfeed/internal/presentation/tui/state"
)

const defaultTimeout = 10 * time.Second

// Deps groups external dependencies for updates.
type Deps struct {
	Loader      *usecase.FeedLoader
	Engagement  *usecase.EngagementService
	Aggregates  *usecase.AggregateSync
	Identity    usecase.IdentityProvider
	Events      <-chan learning.Event
	OpenBrowser func(string) error
	Now         func() time.Time
	Timeout     time.Duration
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) timeout() time.Duration {
	if d.Timeout > 0 {
		return d.Timeout
	}
	return defaultTimeout
}

// PageLoadedMsg is emitted after a LoadMore attempt.
type PageLoadedMsg struct {
	Items     []learning.Item
	Exhausted bool
	Err       error
}

// DashboardRefreshedMsg is emitted after both aggregate fetches settle.
type DashboardRefreshedMsg struct {
	Err error
}

// PushEventMsg carries one decoded push event.
type PushEventMsg struct {
	Event learning.Event
}

// PushEventAppliedMsg is emitted after a push event updated the caches.
type PushEventAppliedMsg struct {
	Relevant bool
	Err      error
}

// PushClosedMsg is emitted once the push channel is gone for good.
type PushClosedMsg struct{}

// LoadMoreCmd creates a command that asks the loader for the next page.
func LoadMoreCmd(loader *usecase.FeedLoader, timeout time.Duration) tea.Cmd {
	if loader == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		items, err := loader.LoadMore(ctx)
		return PageLoadedMsg{
			Items:     items,
			Exhausted: loader.State() == usecase.Exhausted,
			Err:       err,
		}
	}
}

// RefreshDashboardCmd creates a command that refreshes both aggregates.
func RefreshDashboardCmd(aggregates *usecase.AggregateSync, timeout time.Duration) tea.Cmd {
	if aggregates == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return DashboardRefreshedMsg{Err: aggregates.Refresh(ctx)}
	}
}

// WaitForEventCmd waits for the next push event.
func WaitForEventCmd(events <-chan learning.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return PushClosedMsg{}
		}
		return PushEventMsg{Event: ev}
	}
}

// ApplyEventCmd folds a push event into the aggregate caches.
func ApplyEventCmd(aggregates *usecase.AggregateSync, ev learning.Event, timeout time.Duration) tea.Cmd {
	if aggregates == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		relevant, err := aggregates.Apply(ctx, ev)
		return PushEventAppliedMsg{Relevant: relevant, Err: err}
	}
}

// HandleKeyMsg routes a key press. The bool reports whether it was consumed.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		Teardown(s, deps)
		return tea.Quit, true
	}
	if s.Session == state.QuitView {
		return handleQuitView(s, msg, deps)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	if s.Help.ShowAll && (parsed.Type == intent.ToggleHelp || parsed.Type == intent.Back) {
		s.Help.ShowAll = false
		return nil, true
	}
	switch parsed.Type {
	case intent.Quit:
		s.Previous = s.Session
		s.Session = state.QuitView
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	}

	switch s.Session {
	case state.FeedView:
		return handleFeedViewIntent(s, parsed, deps)
	case state.ReaderView:
		return handleReaderViewIntent(s, parsed, deps)
	case state.DashboardView:
		return handleDashboardViewIntent(s, parsed, deps)
	default:
		return nil, false
	}
}

// HandleWindowSize stores the new terminal size and relays out every pane.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
	if s.Reader != nil {
		refreshReaderViewport(s, false)
	}
}

// HandlePageLoadedMsg appends a loaded page or records why loading stopped.
func HandlePageLoadedMsg(s *state.ModelState, msg PageLoadedMsg, deps Deps) tea.Cmd {
	switch {
	case errors.Is(msg.Err, usecase.ErrLoadInFlight):
		if deps.Loader != nil {
			s.Loading = deps.Loader.State() == usecase.Loading
		}
		return nil
	case errors.Is(msg.Err, usecase.ErrFeedExhausted):
		s.Loading = false
		s.Exhausted = true
		return nil
	case msg.Err != nil:
		s.Loading = false
		s.Err = msg.Err
		s.StatusMessage = fmt.Sprintf("Could not load feed (%s to retry): %v", s.Keys.Refresh.Help().Key, msg.Err)
		log.Printf("tui: load feed page: %v", msg.Err)
		return nil
	}

	s.Loading = false
	s.Err = nil
	s.StatusMessage = ""
	s.Exhausted = msg.Exhausted
	s.Items = append(s.Items, msg.Items...)
	cmd := presenter.ApplyFeedList(&s.FeedList, s.Items, s.Read)
	UpdateListSizes(s)

	s.SentinelVisible = false
	return tea.Batch(cmd, ObserveFeed(s, deps))
}

// HandleDashboardRefreshedMsg copies the refreshed aggregates into the view.
func HandleDashboardRefreshedMsg(s *state.ModelState, msg DashboardRefreshedMsg, deps Deps) {
	s.DashboardLoading = false
	syncDashboard(s, deps)
	if msg.Err != nil {
		s.StatusMessage = fmt.Sprintf("Dashboard partially unavailable: %v", msg.Err)
		log.Printf("tui: refresh dashboard: %v", msg.Err)
	}
}

// HandlePushEventMsg applies the event and keeps listening.
func HandlePushEventMsg(msg PushEventMsg, deps Deps) tea.Cmd {
	return tea.Batch(
		ApplyEventCmd(deps.Aggregates, msg.Event, deps.timeout()),
		WaitForEventCmd(deps.Events),
	)
}

// HandlePushEventAppliedMsg refreshes the dashboard after a relevant event.
func HandlePushEventAppliedMsg(s *state.ModelState, msg PushEventAppliedMsg, deps Deps) {
	if !msg.Relevant {
		return
	}
	syncDashboard(s, deps)
	if msg.Err != nil {
		log.Printf("tui: refresh interests after push: %v", msg.Err)
	}
}

// HandlePushClosedMsg marks live updates as unavailable.
func HandlePushClosedMsg(s *state.ModelState) {
	s.PushStatus = "Live updates offline"
}

// Teardown ends every open measurement. Dwell intervals still open are
// discarded; an open reading session is closed and submitted.
func Teardown(s *state.ModelState, deps Deps) {
	closeReader(s, deps)
	if s.Board != nil {
		s.Board.Close()
	}
	if deps.Aggregates != nil {
		deps.Aggregates.Close()
	}
}

func handleQuitView(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		Teardown(s, deps)
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Session = s.Previous
		return nil, true
	}
	return nil, true
}

func handleFeedViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Open:
		item, ok := selectedFeedItem(s)
		if !ok {
			return nil, true
		}
		return openReader(s, item, deps), true
	case intent.Browser:
		if item, ok := selectedFeedItem(s); ok {
			openInBrowser(s, item.URL, deps)
		}
		return nil, true
	case intent.Dashboard:
		return enterDashboard(s, deps), true
	case intent.Refresh:
		if s.Loading || s.Exhausted {
			return nil, true
		}
		s.Loading = true
		s.Err = nil
		s.StatusMessage = ""
		return tea.Batch(s.Spinner.Tick, LoadMoreCmd(deps.Loader, deps.timeout())), true
	}
	return nil, false
}

func handleReaderViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back:
		closeReader(s, deps)
		return ObserveFeed(s, deps), true
	case intent.Browser:
		if s.Reader != nil {
			openInBrowser(s, s.Reader.Item.URL, deps)
		}
		return nil, true
	case intent.Dashboard:
		closeReader(s, deps)
		return enterDashboard(s, deps), true
	}
	return nil, false
}

func handleDashboardViewIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back, intent.Dashboard:
		s.Session = state.FeedView
		UpdateListSizes(s)
		return ObserveFeed(s, deps), true
	case intent.Refresh:
		if s.DashboardLoading {
			return nil, true
		}
		s.DashboardLoading = true
		return tea.Batch(s.Spinner.Tick, RefreshDashboardCmd(deps.Aggregates, deps.timeout())), true
	}
	return nil, false
}

func enterDashboard(s *state.ModelState, deps Deps) tea.Cmd {
	s.Session = state.DashboardView
	s.DashboardLoading = true
	observe := ObserveFeed(s, deps)
	UpdateListSizes(s)
	return tea.Batch(observe, s.Spinner.Tick, RefreshDashboardCmd(deps.Aggregates, deps.timeout()))
}

func syncDashboard(s *state.ModelState, deps Deps) {
	if deps.Aggregates == nil {
		return
	}
	s.Dashboard = deps.Aggregates.Snapshot()
	s.Activity.SetRows(presenter.ActivityRows(s.Dashboard.Activity, deps.now()))
	UpdateListSizes(s)
}

func openInBrowser(s *state.ModelState, url string, deps Deps) {
	if url == "" {
		s.StatusMessage = "This item has no source link"
		return
	}
	if deps.OpenBrowser == nil {
		return
	}
	if err := deps.OpenBrowser(url); err != nil {
		s.StatusMessage = fmt.Sprintf("Could not open browser: %v", err)
	}
}

func selectedFeedItem(s *state.ModelState) (learning.Item, bool) {
	selected, ok := s.FeedList.SelectedItem().(*presenter.Item)
	if !ok || selected == nil {
		return learning.Item{}, false
	}
	for _, it := range s.Items {
		if it.ID == selected.ID {
			return it, true
		}
	}
	return learning.Item{}, false
}
