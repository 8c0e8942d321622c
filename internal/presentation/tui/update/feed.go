package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/learnfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/learnfeed/internal/presentation/tui/state"
)

// VisibleItemIDs returns the ids of the rows on the list's current page and
// whether the end-of-feed sentinel is on screen. Nothing is visible while the
// feed is covered by another view or has no size yet.
func VisibleItemIDs(s *state.ModelState) ([]string, bool) {
	if s.Session != state.FeedView || s.Width <= 0 || s.Height <= 0 {
		return nil, false
	}
	items := s.FeedList.VisibleItems()
	start, end := s.FeedList.Paginator.GetSliceBounds(len(items))
	ids := make([]string, 0, end-start)
	for _, it := range items[start:end] {
		if p, ok := it.(*presenter.Item); ok {
			ids = append(ids, p.ID)
		}
	}
	return ids, end == len(items)
}

// ObserveFeed feeds the current viewport into the visibility board, journals
// emitted dwells and starts loading the next page when the sentinel comes
// into view.
func ObserveFeed(s *state.ModelState, deps Deps) tea.Cmd {
	ids, sentinel := VisibleItemIDs(s)

	if s.Board != nil {
		ratios := make(map[string]float64, len(ids))
		for _, id := range ids {
			ratios[id] = 1
		}
		dwells := s.Board.Observe(ratios, deps.now())
		if len(dwells) > 0 && deps.Engagement != nil {
			deps.Engagement.RecordDwells(dwells)
		}
	}

	appeared := sentinel && !s.SentinelVisible
	s.SentinelVisible = sentinel
	if !appeared || s.Loading || s.Exhausted || deps.Loader == nil {
		return nil
	}
	s.Loading = true
	return tea.Batch(s.Spinner.Tick, LoadMoreCmd(deps.Loader, deps.timeout()))
}
