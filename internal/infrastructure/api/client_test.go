package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tesso57/learnfeed/internal/domain/learning"
)

func TestClient_FetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/feed" {
			t.Errorf("path = %q, want /api/feed", r.URL.Path)
		}
		if got := r.URL.Query().Get("user_id"); got != "u 1" {
			t.Errorf("user_id = %q", got)
		}
		if got := r.URL.Query().Get("cursor"); got != "0" {
			t.Errorf("cursor = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [
				{"id": "c1", "title": "Intro to Python FastApi", "topic": "python", "url": "https://fastapi.tiangolo.com/", "estimated_read_time": 300, "score": 0.42, "created_at": "2026-01-01T00:00:00"},
				{"id": 7, "title": "Redis for Caching", "topic": "backend"}
			],
			"next_cursor": 5
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/")
	page, err := client.FetchPage(context.Background(), "u 1", learning.FirstCursor)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	first := page.Items[0]
	if first.ID != "c1" || first.EstimatedReadTime != 300 || first.Score == nil || *first.Score != 0.42 {
		t.Fatalf("first item = %+v", first)
	}
	if page.Items[1].ID != "7" || page.Items[1].Score != nil {
		t.Fatalf("second item = %+v", page.Items[1])
	}
	if page.NextCursor == nil || *page.NextCursor != "5" {
		t.Fatalf("NextCursor = %v, want 5", page.NextCursor)
	}
	if page.Last() {
		t.Fatal("page should not be last")
	}
}

func TestClient_FetchPage_EndOfFeed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "null cursor", body: `{"items": [], "next_cursor": null}`},
		{name: "missing cursor", body: `{"items": [{"id": "a"}]}`},
		{name: "string cursor empty items", body: `{"items": [], "next_cursor": "9"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			page, err := NewClient(server.URL).FetchPage(context.Background(), "u", "3")
			if err != nil {
				t.Fatalf("FetchPage() error = %v", err)
			}
			if !page.Last() {
				t.Fatalf("page should be last: %+v", page)
			}
		})
	}
}

func TestClient_Track(t *testing.T) {
	var got learning.Interaction
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/track" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"status": "tracked"}`))
	}))
	defer server.Close()

	rec := learning.Interaction{UserID: "u", ContentID: "c", TimeSpent: 3, ScrollDepth: 8, Skipped: true}
	if err := NewClient(server.URL).Track(context.Background(), rec); err != nil {
		t.Fatalf("Track() error = %v", err)
	}
	if got != rec {
		t.Fatalf("server received %+v, want %+v", got, rec)
	}
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewClient(server.URL).Seed(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable || statusErr.Path != "/seed" {
		t.Fatalf("status error = %+v", statusErr)
	}
}

func TestClient_Interests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard/interests/u1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"python": 1.5, "ml": 0.25}`))
	}))
	defer server.Close()

	got, err := NewClient(server.URL).Interests(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Interests() error = %v", err)
	}
	if len(got) != 2 || got["python"] != 1.5 || got["ml"] != 0.25 {
		t.Fatalf("Interests() = %v", got)
	}
}

func TestClient_RecentActivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 12, "user_id": "u1", "content_title": "Docker Compose Guide", "topic": "devops", "time_spent": 40, "scroll_depth": 90, "timestamp": "2026-03-01T09:30:00.123456"},
			{"id": 11, "content_title": "Asyncio in Python", "topic": "python", "time_spent": 3, "scroll_depth": 5, "timestamp": "2026-03-01T09:00:00+00:00"}
		]`))
	}))
	defer server.Close()

	acts, err := NewClient(server.URL).RecentActivity(context.Background())
	if err != nil {
		t.Fatalf("RecentActivity() error = %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("len = %d, want 2", len(acts))
	}
	if acts[0].ID != "12" || acts[0].Topic != "devops" || acts[0].ScrollDepth != 90 {
		t.Fatalf("acts[0] = %+v", acts[0])
	}
	want := time.Date(2026, 3, 1, 9, 30, 0, 123456000, time.UTC)
	if !acts[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", acts[0].Timestamp, want)
	}
	if !acts[1].Timestamp.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp = %v", acts[1].Timestamp)
	}
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	_, err := client.RecentActivity(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	if ts := ParseTimestamp("yesterday"); !ts.IsZero() {
		t.Fatalf("ParseTimestamp(invalid) = %v, want zero", ts)
	}
}
