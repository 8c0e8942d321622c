package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/x/ansi"
	"github.com/tesso57/learnfeed/internal/application/usecase"
	"github.com/tesso57/learnfeed/internal/domain/learning"
)

func TestBuildFeedItems(t *testing.T) {
	items := []learning.Item{
		{ID: "a", Title: "Goroutines", Topic: "Go", EstimatedReadTime: 90},
		{ID: "b", Title: "Borrowing", Topic: "Rust"},
	}
	got := BuildFeedItems(items, map[string]bool{"b": true})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	first := got[0].(*Item)
	if first.Description() != "Go · 2 min read" {
		t.Errorf("Description() = %q", first.Description())
	}
	if first.IsRead() {
		t.Error("a should not be read")
	}
	second := got[1].(*Item)
	if !second.IsRead() || second.Description() != "Rust · Read now" {
		t.Errorf("unexpected second item: %+v / %q", second, second.Description())
	}
}

func TestBuildFeedItemsShowsScore(t *testing.T) {
	score := 0.8765
	got := BuildFeedItems([]learning.Item{
		{ID: "a", Title: "Goroutines", Topic: "Go", EstimatedReadTime: 90, Score: &score},
		{ID: "b", Title: "Lifetimes", Score: &score},
	}, nil)

	if d := got[0].(*Item).Description(); d != "Go · 2 min read · Score: 0.88" {
		t.Fatalf("Description() = %q", d)
	}
	if d := got[1].(*Item).Description(); d != "Read now · Score: 0.88" {
		t.Fatalf("Description() without topic = %q", d)
	}
}

func TestImpressionNote(t *testing.T) {
	tests := []struct {
		count int
		dwell time.Duration
		want  string
	}{
		{count: 0, dwell: 0, want: ""},
		{count: 1, dwell: 1500 * time.Millisecond, want: " · seen 1 time, 2s in feed"},
		{count: 3, dwell: 95 * time.Second, want: " · seen 3 times, 1m35s in feed"},
	}
	for _, tt := range tests {
		if got := ImpressionNote(tt.count, tt.dwell); got != tt.want {
			t.Fatalf("ImpressionNote(%d, %s) = %q, want %q", tt.count, tt.dwell, got, tt.want)
		}
	}
}

func TestItemDescriptionWithoutTopic(t *testing.T) {
	it := NewItem(learning.Item{ID: "x", Title: "T"}, false)
	if it.Description() != "Read now" {
		t.Fatalf("Description() = %q", it.Description())
	}
	if it.FilterValue() != "T" || it.Title() != "T" {
		t.Fatalf("title accessors wrong: %q %q", it.FilterValue(), it.Title())
	}
}

func TestApplyFeedListKeepsSelection(t *testing.T) {
	l := list.New(nil, list.NewDefaultDelegate(), 40, 20)
	items := []learning.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	ApplyFeedList(&l, items[:2], nil)
	l.Select(1)

	ApplyFeedList(&l, items, map[string]bool{"b": true})
	if l.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", l.Index())
	}
	if !l.SelectedItem().(*Item).IsRead() {
		t.Fatal("selected item should be marked read")
	}
}

func TestInterestBars(t *testing.T) {
	profile := learning.InterestProfile{"Go": 0.8, "Rust": 0.4, "Cobol": -0.1}
	bars := InterestBars(profile, 10, 0)
	if len(bars) != 3 {
		t.Fatalf("len = %d, want 3", len(bars))
	}
	if strings.TrimSpace(bars[0].Topic) != "Go" || bars[0].Fill != 10 || bars[0].Score != "0.80" {
		t.Errorf("bars[0] = %+v", bars[0])
	}
	if bars[1].Fill != 5 {
		t.Errorf("bars[1].Fill = %d, want 5", bars[1].Fill)
	}
	if bars[2].Fill != 0 || bars[2].Score != "-0.10" {
		t.Errorf("bars[2] = %+v", bars[2])
	}
	for _, b := range bars {
		if ansi.StringWidth(b.Topic) != 5 {
			t.Errorf("topic label %q not padded to 5", b.Topic)
		}
	}
	if got := bars[0].String(); !strings.HasPrefix(got, "Go    ██████████ ") {
		t.Errorf("String() = %q", got)
	}
}

func TestInterestBarsLimitAndTinyScores(t *testing.T) {
	profile := learning.InterestProfile{"a": 100, "b": 0.01, "c": 0.001}
	bars := InterestBars(profile, 10, 2)
	if len(bars) != 2 {
		t.Fatalf("len = %d, want 2", len(bars))
	}
	if bars[1].Fill != 1 {
		t.Fatalf("positive score should get at least one cell, got %d", bars[1].Fill)
	}
}

func TestBuildMetrics(t *testing.T) {
	m := BuildMetrics(usecase.DashboardSnapshot{
		Interests: learning.InterestProfile{"Go": 1, "Rust": 2},
		Activity:  []learning.Activity{{ID: "1"}},
	})
	if m.Interactions != 1 || m.Topics != 2 {
		t.Fatalf("BuildMetrics() = %+v", m)
	}
}

func TestActivityRows(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := ActivityRows([]learning.Activity{
		{ID: "1", Timestamp: now.Add(-5 * time.Minute), Topic: "Go", ContentTitle: "Maps\nand sets", TimeSpent: 75, ScrollDepth: 40},
		{ID: "2", Topic: "Rust"},
	}, now)

	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	want := []string{"5 minutes ago", "Go", "Maps and sets", "1m15s", "40%"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("rows[0][%d] = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][0] != "-" {
		t.Errorf("zero timestamp should render '-', got %q", rows[1][0])
	}
}

func TestActivityColumns(t *testing.T) {
	cols := ActivityColumns(100)
	if len(cols) != 5 || cols[2].Title != "Content" || cols[2].Width != 49 {
		t.Fatalf("ActivityColumns(100) = %+v", cols)
	}
	if narrow := ActivityColumns(10); narrow[2].Width != 12 {
		t.Fatalf("narrow content width = %d, want 12", narrow[2].Width)
	}
}

func TestReaderMarkdown(t *testing.T) {
	md := ReaderMarkdown(learning.Item{ID: "a", Title: " Channels ", Topic: "Go", URL: "https://go.dev/tour", EstimatedReadTime: 120})
	for _, want := range []string{"`Go` · 2 min read", "# Channels", "<https://go.dev/tour>", "*End of content*"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Count(md, placeholderText) != placeholderParagraphs {
		t.Errorf("expected %d body paragraphs", placeholderParagraphs)
	}

	noTopic := ReaderMarkdown(learning.Item{Title: "Plain"})
	if !strings.HasPrefix(noTopic, "Read now") || strings.Contains(noTopic, "Original source") {
		t.Errorf("unexpected markdown without topic/url: %q", noTopic[:40])
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := ansi.Strip(RenderMarkdown("# Channels\n\nSend and receive.", 40))
	if !strings.Contains(out, "Channels") || !strings.Contains(out, "Send and receive.") {
		t.Fatalf("rendered output missing text: %q", out)
	}
}
