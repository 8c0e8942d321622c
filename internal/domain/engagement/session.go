package engagement

import (
	"math"
	"time"

	"github.com/tesso57/learnfeed/internal/domain/learning"
)

// ReadingRules decide when a reading session is worth reporting.
type ReadingRules struct {
	MinRead   time.Duration // sessions at or below this are dropped
	SkipTime  time.Duration // shorter than this ...
	SkipDepth int           // ... and shallower than this counts as skipped
}

// DefaultReadingRules returns the stock thresholds.
func DefaultReadingRules() ReadingRules {
	return ReadingRules{MinRead: 2 * time.Second, SkipTime: 5 * time.Second, SkipDepth: 10}
}

func (r ReadingRules) normalized() ReadingRules {
	def := DefaultReadingRules()
	if r.MinRead <= 0 {
		r.MinRead = def.MinRead
	}
	if r.SkipTime <= 0 {
		r.SkipTime = def.SkipTime
	}
	if r.SkipDepth <= 0 {
		r.SkipDepth = def.SkipDepth
	}
	return r
}

// Session is one reader session for a single item.
type Session struct {
	userID   string
	itemID   string
	rules    ReadingRules
	openedAt time.Time
	depth    int
	closed   bool
}

// OpenSession starts a reading session at now.
func OpenSession(userID, itemID string, now time.Time, rules ReadingRules) *Session {
	return new(Session{
		userID:   userID,
		itemID:   itemID,
		rules:    rules.normalized(),
		openedAt: now,
	})
}

// ItemID returns the item being read.
func (s *Session) ItemID() string {
	return s.itemID
}

// Depth returns the maximum scroll depth seen so far.
func (s *Session) Depth() int {
	return s.depth
}

// Closed reports whether Close already ran.
func (s *Session) Closed() bool {
	return s.closed
}

// Scroll records a scroll position and returns the running maximum depth.
func (s *Session) Scroll(top, height, client int) int {
	if s.closed {
		return s.depth
	}
	if d := ScrollDepth(top, height, client); d > s.depth {
		s.depth = d
	}
	return s.depth
}

// Close ends the session. The returned interaction is only valid when ok is
// true; subsequent calls always return false.
func (s *Session) Close(now time.Time) (learning.Interaction, bool) {
	if s.closed {
		return learning.Interaction{}, false
	}
	s.closed = true

	elapsed := now.Sub(s.openedAt)
	if elapsed <= s.rules.MinRead {
		return learning.Interaction{}, false
	}
	return learning.Interaction{
		UserID:      s.userID,
		ContentID:   s.itemID,
		TimeSpent:   int(math.Round(elapsed.Seconds())),
		ScrollDepth: s.depth,
		Skipped:     elapsed < s.rules.SkipTime && s.depth < s.rules.SkipDepth,
	}, true
}

// ScrollDepth converts a scroll position into a 0-100 percentage. Content that
// fits entirely in the viewport is fully read.
func ScrollDepth(top, height, client int) int {
	scrollable := height - client
	if scrollable <= 0 {
		return 100
	}
	pct := int(math.Round(float64(top) / float64(scrollable) * 100))
	return max(0, min(100, pct))
}
