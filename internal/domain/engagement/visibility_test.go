package engagement

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestTracker_EmitsOnlyAboveMinDwell(t *testing.T) {
	tests := []struct {
		name     string
		dwell    time.Duration
		wantEmit bool
	}{
		{name: "flicker", dwell: 200 * time.Millisecond},
		{name: "exactly one second", dwell: time.Second},
		{name: "just over", dwell: time.Second + time.Millisecond, wantEmit: true},
		{name: "long read", dwell: 42 * time.Second, wantEmit: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker("item-1", TrackerConfig{})
			if _, ok := tr.Observe(1, t0); ok {
				t.Fatal("Hidden->Visible must not emit")
			}
			d, ok := tr.Observe(0, t0.Add(tt.dwell))
			if ok != tt.wantEmit {
				t.Fatalf("emit = %v, want %v", ok, tt.wantEmit)
			}
			if ok && (d.Duration != tt.dwell || d.ItemID != "item-1") {
				t.Fatalf("dwell = %+v, want item-1/%v", d, tt.dwell)
			}
			if tr.State() != Hidden {
				t.Fatalf("state = %v, want Hidden", tr.State())
			}
		})
	}
}

func TestTracker_ThresholdRatio(t *testing.T) {
	tr := NewTracker("a", TrackerConfig{Threshold: 0.5})
	tr.Observe(0.49, t0)
	if tr.State() != Hidden {
		t.Fatal("ratio below threshold should stay hidden")
	}
	tr.Observe(0.5, t0)
	if tr.State() != Visible {
		t.Fatal("ratio at threshold should be visible")
	}
}

func TestTracker_RepeatedVisibleKeepsStart(t *testing.T) {
	tr := NewTracker("a", TrackerConfig{})
	tr.Observe(1, t0)
	tr.Observe(1, t0.Add(500*time.Millisecond))
	d, ok := tr.Observe(0, t0.Add(3*time.Second))
	if !ok || d.Duration != 3*time.Second {
		t.Fatalf("dwell = %+v ok=%v, want 3s", d, ok)
	}
}

func TestTracker_CloseWhileVisibleDiscards(t *testing.T) {
	tr := NewTracker("a", TrackerConfig{})
	tr.Observe(1, t0)
	tr.Close()
	if _, ok := tr.Observe(0, t0.Add(10*time.Second)); ok {
		t.Fatal("closed tracker must not emit")
	}
	if tr.State() != Hidden {
		t.Fatal("closed tracker should be hidden")
	}
	tr.Close()
}

func TestBoard_ObserveTransitions(t *testing.T) {
	b := NewBoard(TrackerConfig{})

	if got := b.Observe(map[string]float64{"a": 1, "b": 1}, t0); len(got) != 0 {
		t.Fatalf("initial observe emitted %v", got)
	}
	if b.VisibleCount() != 2 {
		t.Fatalf("VisibleCount = %d, want 2", b.VisibleCount())
	}

	// a scrolls out after 3s, b stays.
	got := b.Observe(map[string]float64{"b": 1, "c": 1}, t0.Add(3*time.Second))
	if len(got) != 1 || got[0].ItemID != "a" || got[0].Duration != 3*time.Second {
		t.Fatalf("dwells = %+v, want a/3s", got)
	}

	// b leaves after 3.5s.
	got = b.Observe(map[string]float64{"c": 1}, t0.Add(3500*time.Millisecond))
	if len(got) != 1 || got[0].ItemID != "b" {
		t.Fatalf("dwells = %+v, want b", got)
	}

	// c was visible exactly 1s.
	if got := b.Observe(nil, t0.Add(4*time.Second)); len(got) != 0 {
		t.Fatalf("short dwell emitted %v", got)
	}

	b.Observe(map[string]float64{"a": 1}, t0.Add(5*time.Second))
	b.Close()
	if b.VisibleCount() != 0 {
		t.Fatal("Close should drop all trackers")
	}
	if got := b.Observe(nil, t0.Add(20*time.Second)); len(got) != 0 {
		t.Fatalf("observe after close emitted %v", got)
	}
}
