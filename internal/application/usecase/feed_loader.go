// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tesso57/learnfeed/internal/domain/learning"
)

var (
	// ErrLoadInFlight is returned when LoadMore is called while a page is being fetched.
	ErrLoadInFlight = errors.New("feed page already loading")
	// ErrFeedExhausted is returned once the backend signalled end-of-feed.
	ErrFeedExhausted = errors.New("feed exhausted")
)

// FeedSource abstracts paginated feed retrieval.
type FeedSource interface {
	FetchPage(ctx context.Context, userID string, cursor learning.Cursor) (learning.Page, error)
}

// LoadState is the pagination state of a FeedLoader.
type LoadState int

const (
	Idle LoadState = iota
	Loading
	Exhausted
)

func (s LoadState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// FeedLoader owns the append-only item list of one feed session.
type FeedLoader struct {
	mu       sync.Mutex
	source   FeedSource
	identity IdentityProvider
	state    LoadState
	cursor   learning.Cursor
	items    []learning.Item
}

// NewFeedLoader constructs a loader positioned at the first page.
func NewFeedLoader(source FeedSource, identity IdentityProvider) *FeedLoader {
	return &FeedLoader{
		source:   source,
		identity: identity,
		cursor:   learning.FirstCursor,
	}
}

// LoadMore fetches the next page and appends it. Calls made while a fetch is in
// flight or after exhaustion do nothing and return ErrLoadInFlight or
// ErrFeedExhausted. A failed fetch leaves the loader untouched and retriable.
func (l *FeedLoader) LoadMore(ctx context.Context) ([]learning.Item, error) {
	l.mu.Lock()
	switch l.state {
	case Loading:
		l.mu.Unlock()
		return nil, ErrLoadInFlight
	case Exhausted:
		l.mu.Unlock()
		return nil, ErrFeedExhausted
	}
	l.state = Loading
	cursor := l.cursor
	l.mu.Unlock()

	page, err := l.fetch(ctx, cursor)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = Idle
		return nil, err
	}

	l.items = append(l.items, page.Items...)
	if page.Last() {
		l.state = Exhausted
	} else {
		l.cursor = *page.NextCursor
		l.state = Idle
	}
	return append([]learning.Item(nil), page.Items...), nil
}

func (l *FeedLoader) fetch(ctx context.Context, cursor learning.Cursor) (learning.Page, error) {
	userID, err := l.identity.UserID()
	if err != nil {
		return learning.Page{}, fmt.Errorf("resolve user id: %w", err)
	}
	page, err := l.source.FetchPage(ctx, userID, cursor)
	if err != nil {
		return learning.Page{}, fmt.Errorf("fetch feed page %q: %w", cursor, err)
	}
	return page, nil
}

// State returns the current pagination state.
func (l *FeedLoader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Cursor returns the cursor the next fetch will use.
func (l *FeedLoader) Cursor() learning.Cursor {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cursor
}

// Items returns a snapshot of every item loaded so far.
func (l *FeedLoader) Items() []learning.Item {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]learning.Item(nil), l.items...)
}
