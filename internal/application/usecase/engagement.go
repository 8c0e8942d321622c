// Package usecase contains application-level services.
package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tesso57/learnfeed/internal/domain/engagement"
	"github.com/tesso57/learnfeed/internal/domain/learning"
)

const defaultSubmitTimeout = 10 * time.Second

// InteractionSink abstracts the tracking endpoint.
type InteractionSink interface {
	Track(ctx context.Context, rec learning.Interaction) error
}

// EngagementJournal abstracts local persistence of reads and impressions.
type EngagementJournal interface {
	MarkRead(contentID string, at time.Time) error
	RecordImpression(contentID string, dwell time.Duration, at time.Time) error
	ReadItems() (map[string]bool, error)
	ImpressionTotal(contentID string) (int, time.Duration, error)
}

// EngagementService turns reader sessions and dwell events into submissions
// and journal entries.
type EngagementService struct {
	Sink          InteractionSink
	Journal       EngagementJournal
	Rules         engagement.ReadingRules
	Now           func() time.Time
	SubmitTimeout time.Duration

	wg sync.WaitGroup
}

// NewEngagementService constructs an EngagementService.
func NewEngagementService(sink InteractionSink, journal EngagementJournal, rules engagement.ReadingRules, now func() time.Time) *EngagementService {
	return &EngagementService{
		Sink:    sink,
		Journal: journal,
		Rules:   rules,
		Now:     now,
	}
}

// OpenSession starts a reading session for item and marks it read locally.
func (s *EngagementService) OpenSession(userID string, item learning.Item) *engagement.Session {
	now := s.now()
	if s.Journal != nil {
		if err := s.Journal.MarkRead(item.ID, now); err != nil {
			log.Printf("engagement: mark read %s: %v", item.ID, err)
		}
	}
	return engagement.OpenSession(userID, item.ID, now, s.Rules)
}

// CloseSession ends the session and, when it qualifies, submits the
// interaction in the background. It never blocks on the network.
func (s *EngagementService) CloseSession(session *engagement.Session) (learning.Interaction, bool) {
	if session == nil {
		return learning.Interaction{}, false
	}
	if session.Closed() {
		return learning.Interaction{}, false
	}
	rec, ok := session.Close(s.now())
	if !ok {
		log.Printf("engagement: session for %s too short to report", session.ItemID())
		return learning.Interaction{}, false
	}
	s.Submit(rec)
	return rec, true
}

// Submit sends rec without waiting. Failures are logged and dropped.
func (s *EngagementService) Submit(rec learning.Interaction) {
	if s.Sink == nil {
		return
	}
	timeout := s.SubmitTimeout
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	s.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.Sink.Track(ctx, rec); err != nil {
			log.Printf("engagement: track %s failed: %v", rec.ContentID, err)
		}
	})
}

// RecordDwells journals dwell events emitted by the visibility board.
func (s *EngagementService) RecordDwells(dwells []engagement.Dwell) {
	if s.Journal == nil {
		return
	}
	now := s.now()
	for _, d := range dwells {
		if err := s.Journal.RecordImpression(d.ItemID, d.Duration, now); err != nil {
			log.Printf("engagement: record impression %s: %v", d.ItemID, err)
		}
	}
}

// ReadItems returns the IDs of items opened in earlier sessions.
func (s *EngagementService) ReadItems() map[string]bool {
	if s.Journal == nil {
		return map[string]bool{}
	}
	read, err := s.Journal.ReadItems()
	if err != nil {
		log.Printf("engagement: load read items: %v", err)
		return map[string]bool{}
	}
	return read
}

// Impressions returns how often and for how long item was on screen in the
// feed. Lookup failures report zero.
func (s *EngagementService) Impressions(itemID string) (int, time.Duration) {
	if s.Journal == nil {
		return 0, 0
	}
	count, total, err := s.Journal.ImpressionTotal(itemID)
	if err != nil {
		log.Printf("engagement: impressions for %s: %v", itemID, err)
		return 0, 0
	}
	return count, total
}

// Wait blocks until in-flight submissions finish or ctx is done.
func (s *EngagementService) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (s *EngagementService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
