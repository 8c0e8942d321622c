package modal

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render(Props{Visible: true, Kind: Quit, Body: "Quit?", Width: 40, Height: 10})
	if !strings.Contains(got, "Quit?") {
		t.Fatalf("Render() missing body: %q", got)
	}
	if n := len(strings.Split(got, "\n")); n != 10 {
		t.Fatalf("Render() height = %d, want 10", n)
	}
}

func TestRender_Hidden(t *testing.T) {
	if got := Render(Props{Body: "x"}); got != "" {
		t.Fatalf("Render() = %q, want empty", got)
	}
}

func TestRender_NoSize(t *testing.T) {
	got := Render(Props{Visible: true, Kind: Help, Body: "keys"})
	if !strings.Contains(got, "keys") || !strings.Contains(got, "╭") {
		t.Fatalf("Render() = %q", got)
	}
}
