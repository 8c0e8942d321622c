package update

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/learnfeed/internal/presentation/tui/state"
	"github.com/tesso57/learnfeed/internal/presentation/tui/textutil"
)

func openReader(s *state.ModelState, item learning.Item, deps Deps) tea.Cmd {
	if deps.Engagement == nil || deps.Identity == nil {
		return nil
	}
	userID, err := deps.Identity.UserID()
	if err != nil {
		s.StatusMessage = fmt.Sprintf("Cannot start reading session: %v", err)
		log.Printf("tui: resolve user id: %v", err)
		return nil
	}

	s.Reader = &state.Reader{
		Item:    item,
		Session: deps.Engagement.OpenSession(userID, item),
	}
	s.StatusMessage = ""
	s.Read[item.ID] = true
	listCmd := presenter.ApplyFeedList(&s.FeedList, s.Items, s.Read)

	s.Session = state.ReaderView
	observe := ObserveFeed(s, deps)
	s.Reader.Impressions, s.Reader.Dwell = deps.Engagement.Impressions(item.ID)
	UpdateListSizes(s)
	refreshReaderViewport(s, true)
	return tea.Batch(listCmd, observe)
}

func closeReader(s *state.ModelState, deps Deps) {
	if s.Reader == nil {
		return
	}
	reader := s.Reader
	s.Reader = nil
	if s.Session == state.ReaderView {
		s.Session = state.FeedView
	}
	UpdateListSizes(s)

	if deps.Engagement == nil {
		return
	}
	rec, ok := deps.Engagement.CloseSession(reader.Session)
	if !ok {
		return
	}
	if rec.Skipped {
		s.StatusMessage = fmt.Sprintf("Logged %q as skipped", textutil.SingleLine(reader.Item.Title))
		return
	}
	s.StatusMessage = fmt.Sprintf("Logged %s of reading, %d%% scrolled", textutil.Seconds(rec.TimeSpent), rec.ScrollDepth)
}

// TrackReaderScroll records the viewport position in the open session.
func TrackReaderScroll(s *state.ModelState) {
	if s.Reader == nil || s.Reader.Session == nil {
		return
	}
	s.Reader.Session.Scroll(s.Viewport.YOffset, s.Viewport.TotalLineCount(), s.Viewport.Height)
}

func refreshReaderViewport(s *state.ModelState, top bool) {
	if s.Reader == nil {
		return
	}
	width := s.Viewport.Width - s.Viewport.Style.GetHorizontalFrameSize()
	s.Viewport.SetContent(presenter.RenderMarkdown(presenter.ReaderMarkdown(s.Reader.Item), width))
	if top {
		s.Viewport.GotoTop()
	}
	TrackReaderScroll(s)
}
