package update

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/learnfeed/internal/presentation/tui/metrics"
	"github.com/tesso57/learnfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/learnfeed/internal/presentation/tui/state"
)

// DashboardFixedLines is the number of dashboard lines outside the interest
// bars and the activity table.
const DashboardFixedLines = 8

type layoutMetrics struct {
	mainWidth      int
	mainListHeight int
	readerHeight   int
	tableHeight    int
}

// UpdateListSizes recomputes every pane size from the terminal size.
func UpdateListSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}

	layout := buildLayoutMetrics(s)
	s.FeedList.SetSize(layout.mainWidth, layout.mainListHeight)
	s.Viewport.Width = clampMin(s.Width-1, 1)
	s.Viewport.Height = layout.readerHeight
	s.Activity.SetColumns(presenter.ActivityColumns(clampMin(s.Width-1, 1)))
	s.Activity.SetWidth(clampMin(s.Width-1, 1))
	s.Activity.SetHeight(layout.tableHeight)
}

// SidebarWidth returns the interest sidebar width, or 0 when it is hidden.
func SidebarWidth(s *state.ModelState) int {
	if s.Session != state.FeedView || s.Width < metrics.SidebarMinTotalWidth {
		return 0
	}
	return s.Width / 3
}

func buildLayoutMetrics(s *state.ModelState) layoutMetrics {
	availableHeight := clampMin(s.Height-footerHeight(s), 1)

	sidebarWidth := SidebarWidth(s)
	mainWidth := s.Width
	if sidebarWidth > 0 {
		mainWidth = s.Width - sidebarWidth - metrics.SidebarRightBorderWidth
	}

	mainListHeight := clampMin(availableHeight-metrics.HeaderLines-metrics.StatusLines, 1)
	mainListHeight = reservePaginationSpace(s.FeedList, mainListHeight)

	bars := min(len(s.Dashboard.Interests), metrics.DashboardInterests)
	tableHeight := clampMin(availableHeight-DashboardFixedLines-bars, 3)

	return layoutMetrics{
		mainWidth:      mainWidth,
		mainListHeight: mainListHeight,
		readerHeight:   clampMin(availableHeight-metrics.HeaderLines, 1),
		tableHeight:    tableHeight,
	}
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	footer := state.FooterText(s.Session, s.StatusMessage, s.PushStatus, s.Help.View(&s.Keys))
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}

func reservePaginationSpace(m list.Model, height int) int {
	if height <= 1 || !m.ShowPagination() {
		return height
	}

	statusHeight := 0
	if m.ShowStatusBar() {
		statusHeight = 1
	}

	availHeight := height - statusHeight
	if availHeight < 1 {
		return height
	}

	if len(m.VisibleItems())*metrics.FeedRowLines > availHeight {
		return height - 1
	}
	return height
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
