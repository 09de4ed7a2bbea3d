package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/tuisort/internal/engine"
	"github.com/verte-zerg/tuisort/internal/session"
)

func TestClassifyBar(t *testing.T) {
	st := session.State{
		Values:  []int{3, 5, 1, 8},
		Cursor:  engine.Cursor{Outer: 1, Inner: 1},
		Settled: 1,
	}
	want := []barKind{barDefault, barActive, barActive, barSettled}
	for i, kind := range want {
		if got := classifyBar(i, st); got != kind {
			t.Fatalf("index %d: expected %v, got %v", i, kind, got)
		}
	}

	st.Feedback = session.Feedback{Kind: session.FeedbackIncorrect}
	if got := classifyBar(1, st); got != barIncorrect {
		t.Fatalf("expected incorrect highlight, got %v", got)
	}
	st.Feedback = session.Feedback{Kind: session.FeedbackCorrect}
	if got := classifyBar(2, st); got != barCorrect {
		t.Fatalf("expected correct highlight, got %v", got)
	}

	st.Complete = true
	for i := range st.Values {
		if got := classifyBar(i, st); got != barSettled {
			t.Fatalf("index %d: expected settled after completion, got %v", i, got)
		}
	}
}

func TestRenderBarsLabelsAndMarkers(t *testing.T) {
	st := session.State{
		Values: []int{5, 3, 8, 1},
		Cursor: engine.InitialCursor(4),
	}
	out := renderBars(st, 80, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 4 bar rows plus labels and markers, got %d", len(lines))
	}
	labels := lines[4]
	for _, v := range []string{"5", "3", "8", "1"} {
		if !strings.Contains(labels, v) {
			t.Fatalf("missing label %s in %q", v, labels)
		}
	}
	markers := lines[5]
	if strings.Index(markers, "L") < 0 || strings.Index(markers, "R") < strings.Index(markers, "L") {
		t.Fatalf("expected L before R, got %q", markers)
	}

	st.Complete = true
	lines = strings.Split(renderBars(st, 80, 4), "\n")
	if strings.TrimSpace(lines[5]) != "" {
		t.Fatalf("expected no markers after completion, got %q", lines[5])
	}
}

func TestColumnWidth(t *testing.T) {
	if got := columnWidth(4, 80); got != maxColWidth {
		t.Fatalf("expected capped width, got %d", got)
	}
	if got := columnWidth(64, 100); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := columnWidth(64, 10); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
}
