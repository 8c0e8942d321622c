// Package engagement measures how users engage with feed items.
package engagement

import (
	"sort"
	"time"
)

const (
	// DefaultVisibilityThreshold is the intersection ratio that counts as visible.
	DefaultVisibilityThreshold = 0.5
	// DefaultMinDwell filters out accidental scroll-throughs.
	DefaultMinDwell = time.Second
)

// Visibility is the state of a tracked item.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

// Dwell is emitted when an item leaves the viewport after staying visible
// longer than the minimum dwell.
type Dwell struct {
	ItemID   string
	Duration time.Duration
}

// TrackerConfig tunes visibility tracking.
type TrackerConfig struct {
	Threshold float64
	MinDwell  time.Duration
}

func (c TrackerConfig) normalized() TrackerConfig {
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = DefaultVisibilityThreshold
	}
	if c.MinDwell <= 0 {
		c.MinDwell = DefaultMinDwell
	}
	return c
}

// Tracker observes a single item's viewport intersection.
type Tracker struct {
	itemID string
	cfg    TrackerConfig
	state  Visibility
	since  time.Time
	closed bool
}

// NewTracker attaches a tracker to one item.
func NewTracker(itemID string, cfg TrackerConfig) *Tracker {
	return new(Tracker{itemID: itemID, cfg: cfg.normalized()})
}

// State returns the current visibility state.
func (t *Tracker) State() Visibility {
	return t.state
}

// Observe feeds an intersection ratio sampled at now. It returns a dwell when
// a Visible->Hidden transition lasted longer than the minimum dwell.
func (t *Tracker) Observe(ratio float64, now time.Time) (Dwell, bool) {
	if t.closed {
		return Dwell{}, false
	}
	visible := ratio >= t.cfg.Threshold
	switch {
	case visible && t.state == Hidden:
		t.state = Visible
		t.since = now
	case !visible && t.state == Visible:
		d := now.Sub(t.since)
		t.state = Hidden
		t.since = time.Time{}
		if d > t.cfg.MinDwell {
			return Dwell{ItemID: t.itemID, Duration: d}, true
		}
	}
	return Dwell{}, false
}

// Close detaches the tracker. A pending visible interval is discarded.
func (t *Tracker) Close() {
	t.closed = true
	t.state = Hidden
	t.since = time.Time{}
}

// Board keeps one tracker per rendered item.
type Board struct {
	cfg      TrackerConfig
	trackers map[string]*Tracker
}

// NewBoard creates an empty board.
func NewBoard(cfg TrackerConfig) *Board {
	return new(Board{cfg: cfg.normalized(), trackers: make(map[string]*Tracker)})
}

// Observe samples every known item. Items absent from ratios are treated as
// fully hidden. New item IDs get a tracker on first sight.
func (b *Board) Observe(ratios map[string]float64, now time.Time) []Dwell {
	for id := range ratios {
		if _, ok := b.trackers[id]; !ok {
			b.trackers[id] = NewTracker(id, b.cfg)
		}
	}

	ids := make([]string, 0, len(b.trackers))
	for id := range b.trackers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var dwells []Dwell
	for _, id := range ids {
		if d, ok := b.trackers[id].Observe(ratios[id], now); ok {
			dwells = append(dwells, d)
		}
	}
	return dwells
}

// VisibleCount reports how many items are currently visible.
func (b *Board) VisibleCount() int {
	n := 0
	for _, t := range b.trackers {
		if t.State() == Visible {
			n++
		}
	}
	return n
}

// Close tears down every tracker without emitting.
func (b *Board) Close() {
	for id, t := range b.trackers {
		t.Close()
		delete(b.trackers, id)
	}
}
