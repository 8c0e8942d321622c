// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tesso57/learnfeed/internal/domain/learning"
)

// DashboardSource abstracts the aggregate endpoints.
type DashboardSource interface {
	Interests(ctx context.Context, userID string) (learning.InterestProfile, error)
	RecentActivity(ctx context.Context) ([]learning.Activity, error)
}

// DashboardSnapshot is a consistent copy of the cached aggregates.
type DashboardSnapshot struct {
	Interests learning.InterestProfile
	Activity  []learning.Activity
	Loaded    bool
}

// AggregateSync keeps cached interest scores and recent activity fresh.
type AggregateSync struct {
	source   DashboardSource
	identity IdentityProvider

	mu        sync.Mutex
	interests learning.InterestProfile
	activity  learning.ActivityLog
	loaded    bool
	closed    bool
}

// NewAggregateSync constructs an AggregateSync with empty caches.
func NewAggregateSync(source DashboardSource, identity IdentityProvider) *AggregateSync {
	return &AggregateSync{
		source:   source,
		identity: identity,
	}
}

// Refresh fetches interests and recent activity concurrently. Each result
// replaces its own cache; a failure leaves that cache as it was.
func (s *AggregateSync) Refresh(ctx context.Context) error {
	var wg sync.WaitGroup
	var interestsErr, activityErr error

	wg.Go(func() {
		interestsErr = s.RefreshInterests(ctx)
	})
	wg.Go(func() {
		activities, err := s.source.RecentActivity(ctx)
		if err != nil {
			activityErr = fmt.Errorf("fetch recent activity: %w", err)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.activity = learning.NewActivityLog(activities)
	})
	wg.Wait()

	s.mu.Lock()
	if !s.closed {
		s.loaded = true
	}
	s.mu.Unlock()

	return errors.Join(interestsErr, activityErr)
}

// RefreshInterests re-fetches the interest profile and replaces the cache.
func (s *AggregateSync) RefreshInterests(ctx context.Context) error {
	userID, err := s.identity.UserID()
	if err != nil {
		return fmt.Errorf("resolve user id: %w", err)
	}
	profile, err := s.source.Interests(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch interests: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.interests = profile.Clone()
	return nil
}

// Apply handles one push event. It reports whether the event was relevant.
func (s *AggregateSync) Apply(ctx context.Context, ev learning.Event) (bool, error) {
	if ev.Type != learning.EventNewInteraction || ev.Activity == nil {
		return false, nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, nil
	}
	s.activity = s.activity.Prepend(*ev.Activity)
	s.mu.Unlock()

	return true, s.RefreshInterests(ctx)
}

// Snapshot returns a copy of the cached aggregates.
func (s *AggregateSync) Snapshot() DashboardSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DashboardSnapshot{
		Interests: s.interests.Clone(),
		Activity:  s.activity.Entries(),
		Loaded:    s.loaded,
	}
}

// Close detaches the cache; late responses are ignored.
func (s *AggregateSync) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
