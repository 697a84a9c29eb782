package tui

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderGridSize(t *testing.T) {
	out := renderGrid(3, 4)
	if h := lipgloss.Height(out); h != 9 {
		t.Fatalf("expected 9 lines, got %d", h)
	}
	if w := lipgloss.Width(out); w != 3*(cellWidth+2) {
		t.Fatalf("expected width %d, got %d", 3*(cellWidth+2), w)
	}
	if renderGrid(0, 0) != "" {
		t.Fatalf("expected empty grid for side 0")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("Q", 5); got != "  Q  " {
		t.Fatalf("unexpected centering: %q", got)
	}
	if got := centerText("字", 5); got != " 字  " {
		t.Fatalf("unexpected wide centering: %q", got)
	}
	if got := centerText("LONGER", 3); got != "LONGER" {
		t.Fatalf("expected overflow to pass through: %q", got)
	}
}

func TestSpeechArgs(t *testing.T) {
	cases := []struct {
		template string
		want     []string
	}{
		{"espeak {letter}", []string{"espeak", "k"}},
		{"say -v Alex", []string{"say", "-v", "Alex", "k"}},
		{"play sounds/{letter}.wav", []string{"play", "sounds/k.wav"}},
		{"   ", nil},
	}
	for _, tc := range cases {
		if got := speechArgs(tc.template, "K"); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("speechArgs(%q) = %v, want %v", tc.template, got, tc.want)
		}
	}
}

func TestSpeakWithoutTemplateIsNoop(t *testing.T) {
	if err := newSpeaker("").Speak("K"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	var sp *speaker
	if err := sp.Speak("K"); err != nil {
		t.Fatalf("expected nil speaker to be a no-op, got %v", err)
	}
}
