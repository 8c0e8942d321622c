package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/tesso57/learnfeed/internal/application/settings"
	"github.com/tesso57/learnfeed/internal/application/usecase"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/presentation/tui/update"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type stubFeedSource struct {
	mock.Mock
	pages map[learning.Cursor]learning.Page
}

func (s *stubFeedSource) FetchPage(ctx context.Context, userID string, cursor learning.Cursor) (learning.Page, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, userID, cursor)
		page, _ := args.Get(0).(learning.Page)
		return page, args.Error(1)
	}
	return s.pages[cursor], nil
}

type stubSink struct {
	mock.Mock
	mu      sync.Mutex
	tracked []learning.Interaction
}

func (s *stubSink) Track(ctx context.Context, rec learning.Interaction) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, rec)
		return args.Error(0)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked = append(s.tracked, rec)
	return nil
}

func (s *stubSink) Tracked() []learning.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]learning.Interaction(nil), s.tracked...)
}

type impression struct {
	id    string
	dwell time.Duration
}

type stubJournal struct {
	mu          sync.Mutex
	read        map[string]bool
	impressions []impression
}

func (j *stubJournal) MarkRead(contentID string, _ time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.read == nil {
		j.read = map[string]bool{}
	}
	j.read[contentID] = true
	return nil
}

func (j *stubJournal) RecordImpression(contentID string, dwell time.Duration, _ time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.impressions = append(j.impressions, impression{id: contentID, dwell: dwell})
	return nil
}

func (j *stubJournal) ImpressionTotal(contentID string) (int, time.Duration, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	count := 0
	var total time.Duration
	for _, imp := range j.impressions {
		if imp.id == contentID {
			count++
			total += imp.dwell
		}
	}
	return count, total, nil
}

func (j *stubJournal) ReadItems() (map[string]bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make(map[string]bool, len(j.read))
	for k, v := range j.read {
		out[k] = v
	}
	return out, nil
}

type stubDashboardSource struct {
	mock.Mock
	interests learning.InterestProfile
	activity  []learning.Activity
}

func (s *stubDashboardSource) Interests(ctx context.Context, userID string) (learning.InterestProfile, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx, userID)
		profile, _ := args.Get(0).(learning.InterestProfile)
		return profile, args.Error(1)
	}
	return s.interests.Clone(), nil
}

func (s *stubDashboardSource) RecentActivity(ctx context.Context) ([]learning.Activity, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(ctx)
		activity, _ := args.Get(0).([]learning.Activity)
		return activity, args.Error(1)
	}
	return append([]learning.Activity(nil), s.activity...), nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type harness struct {
	model     *Model
	source    *stubFeedSource
	sink      *stubSink
	journal   *stubJournal
	dashboard *stubDashboardSource
	clock     *fakeClock
	opened    []string
}

func testSettings() settings.Settings {
	return settings.Settings{
		RequestTimeout: time.Second,
		KeyMap: settings.KeyMapConfig{
			Up:        "k",
			Down:      "j",
			UpPage:    "ctrl+u",
			DownPage:  "ctrl+d",
			Top:       "g",
			Bottom:    "G",
			Open:      "enter,l",
			Back:      "esc,h",
			Quit:      "q",
			Dashboard: "d",
			Browser:   "o",
			Refresh:   "r",
		},
		Theme: settings.ThemeConfig{Topic: "244", Accent: "205", Bar: "39"},
	}
}

func pageOf(next string, items ...learning.Item) learning.Page {
	page := learning.Page{Items: items}
	if next != "" {
		c := learning.Cursor(next)
		page.NextCursor = &c
	}
	return page
}

func newHarness(t *testing.T, events <-chan learning.Event) *harness {
	t.Helper()
	h := &harness{
		source:    &stubFeedSource{pages: map[learning.Cursor]learning.Page{}},
		sink:      &stubSink{},
		journal:   &stubJournal{},
		dashboard: &stubDashboardSource{},
		clock:     &fakeClock{now: t0},
	}
	identity := usecase.StaticIdentity("u1")
	deps := update.Deps{
		Loader:     usecase.NewFeedLoader(h.source, identity),
		Engagement: usecase.NewEngagementService(h.sink, h.journal, testSettings().ReadingRules(), h.clock.Now),
		Aggregates: usecase.NewAggregateSync(h.dashboard, identity),
		Identity:   identity,
		Events:     events,
		OpenBrowser: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
		Now: h.clock.Now,
	}
	h.model = NewModel(testSettings(), deps)
	return h
}

// start sizes the terminal and runs the initial commands.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.send(t, tea.WindowSizeMsg{Width: 100, Height: 40})
	h.run(t, h.model.Init())
}

func (h *harness) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := h.model.Update(msg)
	h.run(t, cmd)
	return cmd
}

func (h *harness) press(t *testing.T, key string) tea.Cmd {
	t.Helper()
	return h.send(t, keyMsg(key))
}

func (h *harness) waitSubmissions(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.model.deps.Engagement.Wait(ctx)
}

// run executes cmd and feeds application messages back into the model.
// Timer driven messages such as spinner ticks are dropped.
func (h *harness) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case update.PageLoadedMsg, update.DashboardRefreshedMsg, update.PushEventMsg,
			update.PushEventAppliedMsg, update.PushClosedMsg:
			_, follow := h.model.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func sampleItems(n int, prefix string) []learning.Item {
	items := make([]learning.Item, n)
	for i := range items {
		id := prefix + string(rune('a'+i))
		items[i] = learning.Item{
			ID:                id,
			Title:             "Lesson " + id,
			Topic:             "Go",
			URL:               "https://example.com/" + id,
			EstimatedReadTime: 120,
		}
	}
	return items
}
