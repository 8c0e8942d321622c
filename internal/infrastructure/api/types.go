package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tesso57/learnfeed/internal/domain/learning"
)

type feedResponse struct {
	Items      []itemPayload `json:"items"`
	NextCursor wireCursor    `json:"next_cursor"`
}

func (r feedResponse) toPage() learning.Page {
	items := make([]learning.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, learning.Item{
			ID:                it.ID.String(),
			Topic:             it.Topic,
			Title:             it.Title,
			URL:               it.URL,
			EstimatedReadTime: it.EstimatedReadTime,
			Score:             it.Score,
		})
	}
	page := learning.Page{Items: items}
	if r.NextCursor.set {
		cur := learning.Cursor(r.NextCursor.value)
		page.NextCursor = &cur
	}
	return page
}

type itemPayload struct {
	ID                wireID   `json:"id"`
	Topic             string   `json:"topic"`
	Title             string   `json:"title"`
	URL               string   `json:"url"`
	EstimatedReadTime int      `json:"estimated_read_time"`
	Score             *float64 `json:"score"`
}

type activityPayload struct {
	ID           wireID `json:"id"`
	UserID       string `json:"user_id"`
	Timestamp    string `json:"timestamp"`
	Topic        string `json:"topic"`
	ContentTitle string `json:"content_title"`
	TimeSpent    int    `json:"time_spent"`
	ScrollDepth  int    `json:"scroll_depth"`
}

func (p activityPayload) toActivity() learning.Activity {
	return learning.Activity{
		ID:           p.ID.String(),
		UserID:       p.UserID,
		Timestamp:    ParseTimestamp(p.Timestamp),
		Topic:        p.Topic,
		ContentTitle: p.ContentTitle,
		TimeSpent:    p.TimeSpent,
		ScrollDepth:  p.ScrollDepth,
	}
}

// DecodeActivity parses one activity object as sent by the backend.
func DecodeActivity(data []byte) (learning.Activity, error) {
	var p activityPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return learning.Activity{}, err
	}
	return p.toActivity(), nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
}

// ParseTimestamp accepts RFC 3339 and the naive ISO forms the backend emits.
// Naive timestamps are UTC. Unparsable values yield the zero time.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// wireCursor accepts a JSON string or number; null and absence leave it unset.
type wireCursor struct {
	value string
	set   bool
}

func (c *wireCursor) UnmarshalJSON(data []byte) error {
	s, ok, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("next_cursor: %w", err)
	}
	c.value, c.set = s, ok
	return nil
}

// wireID accepts string or numeric identifiers.
type wireID string

func (id *wireID) UnmarshalJSON(data []byte) error {
	s, _, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = wireID(s)
	return nil
}

func (id wireID) String() string {
	return string(id)
}

func scalarString(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return s, true, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", false, err
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return strconv.FormatInt(i, 10), true, nil
	}
	return n.String(), true, nil
}
