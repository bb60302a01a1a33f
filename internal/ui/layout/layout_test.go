package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Quiz", HeaderInfo{Course: "Spanish (from English)"}, 100)
	for _, want := range []string{"Polyglot", "Quiz", "Spanish (from English)"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
	if strings.Contains(h, "not saved") {
		t.Error("durable header should not warn")
	}

	h = RenderHeader("Quiz", HeaderInfo{Unsaved: true}, 100)
	if !strings.Contains(h, "not saved") {
		t.Error("expected unsaved warning")
	}
}

func TestRenderFooter(t *testing.T) {
	f := RenderFooter([]KeyHint{{Key: "Enter", Description: "Submit"}}, 80)
	if !strings.Contains(f, "Enter") || !strings.Contains(f, "Submit") {
		t.Errorf("footer missing hint: %q", f)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 10, true},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
