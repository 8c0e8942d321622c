package layout

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	props := Props{
		Sidebar: "SIDEBAR",
		Main:    "MAIN",
		Footer:  "FOOTER",
	}

	got := Render(props)

	for _, part := range []string{"SIDEBAR", "MAIN", "FOOTER"} {
		if !strings.Contains(got, part) {
			t.Errorf("Missing %s content", strings.ToLower(part))
		}
	}
	lines := strings.Split(got, "\n")
	if !strings.Contains(lines[0], "SIDEBAR") || !strings.Contains(lines[0], "MAIN") {
		t.Errorf("sidebar and main should share the first line: %q", lines[0])
	}
}

func TestRender_WithoutSidebar(t *testing.T) {
	got := Render(Props{Main: "MAIN"})
	if got != "MAIN" {
		t.Fatalf("Render() = %q, want MAIN", got)
	}
}
