// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/learnfeed/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/learnfeed/internal/presentation/tui/components/main"
	"github.com/tesso57/learnfeed/internal/presentation/tui/components/modal"
	"github.com/tesso57/learnfeed/internal/presentation/tui/components/progress"
	"github.com/tesso57/learnfeed/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/learnfeed/internal/presentation/tui/metrics"
	"github.com/tesso57/learnfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/learnfeed/internal/presentation/tui/state"
	"github.com/tesso57/learnfeed/internal/presentation/tui/textutil"
	"github.com/tesso57/learnfeed/internal/presentation/tui/update"
	"github.com/tesso57/learnfeed/internal/presentation/tui/view"
)

const maxLabelWidth = 16

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	width := update.SidebarWidth(m.state)
	if width == 0 {
		return sidebar.Props{}
	}
	height := m.state.FeedList.Height() + metrics.HeaderLines + metrics.StatusLines

	body := "No interest data yet"
	if len(m.state.Dashboard.Interests) > 0 {
		barWidth := max(width-maxLabelWidth-8, 4)
		bars := presenter.InterestBars(m.state.Dashboard.Interests, barWidth, metrics.SidebarInterests)
		body = m.renderBars(bars, width-2)
	}
	return sidebar.Props{
		View:   body,
		Width:  width,
		Height: height,
		Title:  "Your Interests",
		Accent: lipgloss.Color(m.settings.Theme.Accent),
	}
}

func (m *Model) buildHeaderProps() header.Props {
	switch m.state.Session {
	case state.FeedView:
		selected, ok := m.state.FeedList.SelectedItem().(*presenter.Item)
		if !ok || selected == nil {
			return header.Props{}
		}
		width := m.state.FeedList.Width() - metrics.HeaderWidthPadding
		return header.Props{
			Visible: true,
			Link:    textutil.Line(selected.Link, width),
			Topic:   textutil.Line(selected.Description(), width),
		}
	case state.ReaderView:
		if m.state.Reader == nil {
			return header.Props{}
		}
		depth := 0
		if m.state.Reader.Session != nil {
			depth = m.state.Reader.Session.Depth()
		}
		item := m.state.Reader.Item
		return header.Props{
			Visible: true,
			Topic: textutil.Line(
				item.Topic+" · "+item.Title+presenter.ImpressionNote(m.state.Reader.Impressions, m.state.Reader.Dwell),
				m.state.Viewport.Width-4,
			),
			Progress: progress.Render(progress.Props{
				Percent: depth,
				Width:   max(m.state.Viewport.Width-6, 1),
				Color:   lipgloss.Color(m.settings.Theme.Bar),
			}),
		}
	default:
		return header.Props{}
	}
}

func (m *Model) buildMainProps() mainview.Props {
	st := m.state
	width := st.Width
	if sw := update.SidebarWidth(st); sw > 0 {
		width -= sw + metrics.SidebarRightBorderWidth
	}
	props := mainview.Props{Width: width, Height: max(st.Height-m.footerHeight(), 1)}

	switch st.Session {
	case state.ReaderView:
		props.Body = st.Viewport.View()
	case state.DashboardView:
		props.Body = m.buildDashboardBody()
		if st.DashboardLoading {
			props.Status = fmt.Sprintf("%s Refreshing...", st.Spinner.View())
		}
	default:
		props.Body = st.FeedList.View()
		props.Status = m.feedStatus()
	}
	return props
}

func (m *Model) feedStatus() string {
	st := m.state
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	switch {
	case st.Loading:
		return fmt.Sprintf("%s Loading more...", st.Spinner.View())
	case st.Exhausted && len(st.Items) == 0:
		return faint.Render("Nothing to read yet.")
	case st.Exhausted:
		return faint.Render("You're all caught up!")
	default:
		return ""
	}
}

func (m *Model) buildDashboardBody() string {
	st := m.state
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(m.settings.Theme.Accent)).Bold(true)
	section := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(accent.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(section.Render("Your Topic Interests"))
	b.WriteString("\n")
	if len(st.Dashboard.Interests) == 0 {
		b.WriteString("No interest data yet")
	} else {
		bars := presenter.InterestBars(st.Dashboard.Interests, metrics.InterestBarWidth, metrics.DashboardInterests)
		b.WriteString(m.renderBars(bars, st.Width-2))
	}
	b.WriteString("\n\n")

	counters := presenter.BuildMetrics(st.Dashboard)
	b.WriteString(fmt.Sprintf("%s global interactions tracked · %s active topics",
		accent.Render(fmt.Sprint(counters.Interactions)),
		accent.Render(fmt.Sprint(counters.Topics)),
	))
	b.WriteString("\n\n")
	b.WriteString(section.Render("Recent Backend Activity"))
	b.WriteString("\n")
	b.WriteString(st.Activity.View())
	return b.String()
}

func (m *Model) renderBars(bars []presenter.InterestBar, width int) string {
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(m.settings.Theme.Bar))
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	lines := make([]string, len(bars))
	for i, bar := range bars {
		line := bar.Topic + " " +
			fill.Render(strings.Repeat("█", bar.Fill)) +
			empty.Render(strings.Repeat("░", bar.Width-bar.Fill)) +
			" " + bar.Score
		lines[i] = textutil.Truncate(line, width)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) buildModalProps() modal.Props {
	if m.state.Session == state.QuitView {
		return modal.Props{
			Visible: true,
			Kind:    modal.Quit,
			Body:    "Are you sure you want to quit?\n\n(y/n)",
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	}
	if m.state.Help.ShowAll {
		return modal.Props{
			Visible: true,
			Kind:    modal.Help,
			Body:    m.state.Help.View(&m.state.Keys),
			Width:   m.state.Width,
			Height:  m.state.Height,
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	return state.FooterText(m.state.Session, m.state.StatusMessage, m.state.PushStatus, m.state.Help.View(&m.state.Keys))
}

func (m *Model) footerHeight() int {
	footer := m.buildFooterProps()
	if footer == "" {
		return 0
	}
	return lipgloss.Height(footer)
}
