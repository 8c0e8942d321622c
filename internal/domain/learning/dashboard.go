package learning

import (
	"sort"
	"time"
)

// ActivityLimit caps the recent activity view.
const ActivityLimit = 10

// Activity is one recorded interaction as broadcast by the backend.
type Activity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Topic        string    `json:"topic"`
	ContentTitle string    `json:"content_title"`
	TimeSpent    int       `json:"time_spent"`
	ScrollDepth  int       `json:"scroll_depth"`
}

// ActivityLog is a bounded newest-first list of activities.
type ActivityLog struct {
	entries []Activity
}

// NewActivityLog builds a log from entries already ordered newest first.
func NewActivityLog(entries []Activity) ActivityLog {
	if len(entries) > ActivityLimit {
		entries = entries[:ActivityLimit]
	}
	return ActivityLog{entries: append([]Activity(nil), entries...)}
}

// Prepend returns a new log with entry at the front, truncated to the limit.
func (l ActivityLog) Prepend(entry Activity) ActivityLog {
	entries := make([]Activity, 0, min(len(l.entries)+1, ActivityLimit))
	entries = append(entries, entry)
	for _, e := range l.entries {
		if len(entries) == ActivityLimit {
			break
		}
		entries = append(entries, e)
	}
	return ActivityLog{entries: entries}
}

// Entries returns a copy of the entries, newest first.
func (l ActivityLog) Entries() []Activity {
	return append([]Activity(nil), l.entries...)
}

// Len returns the number of entries.
func (l ActivityLog) Len() int {
	return len(l.entries)
}

// InterestProfile maps topics to backend-computed relevance scores.
type InterestProfile map[string]float64

// TopicScore is one row of a sorted interest profile.
type TopicScore struct {
	Topic string
	Score float64
}

// Clone returns an independent copy of the profile.
func (p InterestProfile) Clone() InterestProfile {
	if p == nil {
		return nil
	}
	out := make(InterestProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Sorted returns topics ordered by descending score, then by name.
func (p InterestProfile) Sorted() []TopicScore {
	rows := make([]TopicScore, 0, len(p))
	for topic, score := range p {
		rows = append(rows, TopicScore{Topic: topic, Score: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score == rows[j].Score {
			return rows[i].Topic < rows[j].Topic
		}
		return rows[i].Score > rows[j].Score
	})
	return rows
}
