package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/learnfeed/internal/application/settings"
	"github.com/tesso57/learnfeed/internal/domain/engagement"
	"github.com/tesso57/learnfeed/internal/presentation/tui/presenter"
	"github.com/tesso57/learnfeed/internal/presentation/tui/state"
	"github.com/tesso57/learnfeed/internal/presentation/tui/update"
	"github.com/tesso57/learnfeed/internal/presentation/tui/view"
	listview "github.com/tesso57/learnfeed/internal/presentation/tui/view/list"
)

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	deps     update.Deps
	state    *state.ModelState
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, deps update.Deps) *Model {
	if deps.OpenBrowser == nil {
		deps.OpenBrowser = openBrowser
	}
	if deps.Timeout <= 0 {
		deps.Timeout = cfg.RequestTimeout
	}
	return &Model{
		settings: cfg,
		deps:     deps,
		state:    newModelState(cfg, deps),
	}
}

// Init starts the first page load, the dashboard refresh and the push listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		update.LoadMoreCmd(m.deps.Loader, m.deps.Timeout),
		update.RefreshDashboardCmd(m.deps.Aggregates, m.deps.Timeout),
		update.WaitForEventCmd(m.deps.Events),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps)
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
		cmds = append(cmds, update.ObserveFeed(m.state, m.deps))
	case update.PageLoadedMsg:
		cmds = append(cmds, update.HandlePageLoadedMsg(m.state, msg, m.deps))
	case update.DashboardRefreshedMsg:
		update.HandleDashboardRefreshedMsg(m.state, msg, m.deps)
	case update.PushEventMsg:
		cmds = append(cmds, update.HandlePushEventMsg(msg, m.deps))
	case update.PushEventAppliedMsg:
		update.HandlePushEventAppliedMsg(m.state, msg, m.deps)
	case update.PushClosedMsg:
		update.HandlePushClosedMsg(m.state)
	}

	if m.state.Loading || m.state.DashboardLoading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Session {
	case state.FeedView:
		m.state.FeedList, cmd = m.state.FeedList.Update(msg)
		cmds = append(cmds, cmd)
		if _, ok := msg.(tea.KeyMsg); ok {
			cmds = append(cmds, update.ObserveFeed(m.state, m.deps))
		}
	case state.ReaderView:
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		cmds = append(cmds, cmd)
		update.TrackReaderScroll(m.state)
	case state.DashboardView:
		m.state.Activity, cmd = m.state.Activity.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

// Shutdown ends open measurements when the program stops without the quit
// dialog, e.g. on an interrupt.
func (m *Model) Shutdown() {
	update.Teardown(m.state, m.deps)
}

func newModelState(cfg settings.Settings, deps update.Deps) *state.ModelState {
	read := map[string]bool{}
	if deps.Engagement != nil {
		read = deps.Engagement.ReadItems()
	}

	st := &state.ModelState{
		Session:          state.FeedView,
		FeedList:         newFeedList(cfg),
		Viewport:         newViewport(),
		Activity:         newActivityTable(cfg),
		Help:             help.New(),
		Spinner:          newSpinner(cfg),
		Keys:             state.NewKeyMap(cfg.KeyMap),
		Read:             read,
		Board:            engagement.NewBoard(cfg.TrackerConfig()),
		Loading:          deps.Loader != nil,
		DashboardLoading: deps.Aggregates != nil,
	}

	st.FeedList.KeyMap.CursorUp = st.Keys.Up
	st.FeedList.KeyMap.CursorDown = st.Keys.Down
	st.FeedList.KeyMap.PrevPage = st.Keys.UpPage
	st.FeedList.KeyMap.NextPage = st.Keys.DownPage
	st.FeedList.KeyMap.GoToStart = st.Keys.Top
	st.FeedList.KeyMap.GoToEnd = st.Keys.Bottom
	st.Viewport.KeyMap.Up = st.Keys.Up
	st.Viewport.KeyMap.Down = st.Keys.Down
	st.Viewport.KeyMap.HalfPageUp = st.Keys.UpPage
	st.Viewport.KeyMap.HalfPageDown = st.Keys.DownPage

	presenter.ApplyFeedList(&st.FeedList, nil, st.Read)
	return st
}

func newFeedList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewFeedDelegate(lipgloss.Color(cfg.Theme.Topic)), 0, 0)
	l.Title = "Your Feed"
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newActivityTable(cfg settings.Settings) table.Model {
	t := table.New(
		table.WithColumns(presenter.ActivityColumns(80)),
		table.WithFocused(true),
		table.WithHeight(5),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color(cfg.Theme.Accent)).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
