package lesson

import (
	"strings"
	"testing"
)

func TestWalkthroughNarratesEveryComparison(t *testing.T) {
	got, err := Walkthrough([]int{5, 3, 8, 1})
	if err != nil {
		t.Fatalf("walkthrough: %v", err)
	}
	rows := []string{
		"| 1 | 1 | 5 vs 3 | swap | [3, 5, 8, 1] |",
		"| 2 | 1 | 5 vs 8 | pass | [3, 5, 8, 1] |",
		"| 3 | 1 | 8 vs 1 | swap | [3, 5, 1, 8] |",
		"| 4 | 2 | 3 vs 5 | pass | [3, 5, 1, 8] |",
		"| 5 | 2 | 5 vs 1 | swap | [3, 1, 5, 8] |",
		"| 6 | 3 | 3 vs 1 | swap | [1, 3, 5, 8] |",
	}
	for _, row := range rows {
		if !strings.Contains(got, row) {
			t.Fatalf("missing row %q in:\n%s", row, got)
		}
	}
	if !strings.Contains(got, "6 comparisons, 4 swaps.") {
		t.Fatalf("missing totals in:\n%s", got)
	}
}

func TestWalkthroughLeavesInputAlone(t *testing.T) {
	values := []int{2, 1}
	if _, err := Walkthrough(values); err != nil {
		t.Fatalf("walkthrough: %v", err)
	}
	if values[0] != 2 || values[1] != 1 {
		t.Fatalf("input mutated: %v", values)
	}
}

func TestWalkthroughRejectsShortArrays(t *testing.T) {
	if _, err := Walkthrough([]int{1}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRenderPlainStyle(t *testing.T) {
	md, err := Markdown(ExampleValues)
	if err != nil {
		t.Fatalf("markdown: %v", err)
	}
	out, err := Render(md, 120, "notty")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Bubble Sort", "Worked example", "Rules of the game"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered lesson missing %q", want)
		}
	}
}
