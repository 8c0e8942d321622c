package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/tesso57/learnfeed/internal/application/usecase"
	"github.com/tesso57/learnfeed/internal/domain/learning"
	"github.com/tesso57/learnfeed/internal/presentation/tui/textutil"
)

const maxTopicLabel = 16

// InterestBar is one rendered row of the interest chart.
type InterestBar struct {
	Topic string
	Score string
	Fill  int
	Width int
}

// String renders the bar with plain block characters.
func (b InterestBar) String() string {
	return b.Topic + " " + strings.Repeat("█", b.Fill) + strings.Repeat("░", b.Width-b.Fill) + " " + b.Score
}

// InterestBars scales interest scores against the highest positive score.
// Non-positive scores render as empty bars. At most limit rows are returned
// when limit is positive.
func InterestBars(profile learning.InterestProfile, width, limit int) []InterestBar {
	sorted := profile.Sorted()
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	if width < 1 {
		width = 1
	}

	labelWidth := 0
	maxScore := 0.0
	for _, ts := range sorted {
		labelWidth = max(labelWidth, min(ansi.StringWidth(ts.Topic), maxTopicLabel))
		maxScore = max(maxScore, ts.Score)
	}

	bars := make([]InterestBar, len(sorted))
	for i, ts := range sorted {
		fill := 0
		if maxScore > 0 && ts.Score > 0 {
			fill = int(ts.Score/maxScore*float64(width) + 0.5)
			fill = min(max(fill, 1), width)
		}
		label := textutil.Truncate(ts.Topic, labelWidth)
		bars[i] = InterestBar{
			Topic: label + strings.Repeat(" ", labelWidth-ansi.StringWidth(label)),
			Score: FormatScore(ts.Score),
			Fill:  fill,
			Width: width,
		}
	}
	return bars
}

// FormatScore renders a score with two decimals.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// Metrics summarizes the dashboard counters.
type Metrics struct {
	Interactions int
	Topics       int
}

// BuildMetrics derives the counters shown on the dashboard.
func BuildMetrics(snapshot usecase.DashboardSnapshot) Metrics {
	return Metrics{
		Interactions: len(snapshot.Activity),
		Topics:       len(snapshot.Interests),
	}
}

// ActivityColumns sizes the recent-activity table for width cells.
func ActivityColumns(width int) []table.Column {
	const (
		whenWidth  = 14
		topicWidth = 14
		timeWidth  = 7
		depthWidth = 6
		padding    = 10
	)
	titleWidth := max(width-whenWidth-topicWidth-timeWidth-depthWidth-padding, 12)
	return []table.Column{
		{Title: "When", Width: whenWidth},
		{Title: "Topic", Width: topicWidth},
		{Title: "Content", Width: titleWidth},
		{Title: "Time", Width: timeWidth},
		{Title: "Depth", Width: depthWidth},
	}
}

// ActivityRows renders activity newest first with times relative to now.
func ActivityRows(activity []learning.Activity, now time.Time) []table.Row {
	rows := make([]table.Row, len(activity))
	for i, a := range activity {
		when := "-"
		if !a.Timestamp.IsZero() {
			when = humanize.RelTime(a.Timestamp, now, "ago", "from now")
		}
		rows[i] = table.Row{
			when,
			textutil.SingleLine(a.Topic),
			textutil.SingleLine(a.ContentTitle),
			textutil.Seconds(a.TimeSpent),
			fmt.Sprintf("%d%%", a.ScrollDepth),
		}
	}
	return rows
}
