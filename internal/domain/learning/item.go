// Package learning defines core feed models.
package learning

import (
	"fmt"
	"math"
)

// FirstCursor is the cursor of the first feed page.
const FirstCursor Cursor = "0"

// Cursor is an opaque pagination token returned by the feed endpoint.
type Cursor string

// Item represents a single learning item in the feed.
type Item struct {
	ID                string
	Topic             string
	Title             string
	URL               string
	EstimatedReadTime int // seconds, 0 when unknown
	Score             *float64
}

// ReadTimeLabel returns a short human label for the estimated read time.
func (i Item) ReadTimeLabel() string {
	if i.EstimatedReadTime <= 0 {
		return "Read now"
	}
	return fmt.Sprintf("%d min read", int(math.Ceil(float64(i.EstimatedReadTime)/60)))
}

// Page is one page of the feed.
type Page struct {
	Items []Item
	// NextCursor is nil when the backend signals end-of-feed.
	NextCursor *Cursor
}

// Last reports whether the page ends the feed.
func (p Page) Last() bool {
	return len(p.Items) == 0 || p.NextCursor == nil || *p.NextCursor == ""
}
