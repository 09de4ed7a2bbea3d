package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuisort/internal/model"
)

func TestRunMetrics(t *testing.T) {
	acc, perMinute := RunMetrics(27, 3, 60000)
	if math.Abs(acc-0.9) > 1e-9 {
		t.Fatalf("expected accuracy 0.9, got %f", acc)
	}
	if math.Abs(perMinute-27) > 1e-9 {
		t.Fatalf("expected 27 per minute, got %f", perMinute)
	}
	acc, perMinute = RunMetrics(0, 0, 0)
	if acc != 0 || perMinute != 0 {
		t.Fatalf("expected zero metrics, got %f %f", acc, perMinute)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestSummarizeIgnoresLearnRuns(t *testing.T) {
	runs := []model.RunAggregate{
		{Mode: "play", Score: 40, Comparisons: 6, Mistakes: 2},
		{Mode: "play", Score: 60, Comparisons: 6},
		{Mode: "learn", Comparisons: 6},
	}
	s := Summarize(runs)
	if s.Runs != 3 || s.PlayRuns != 2 || s.BestScore != 60 || s.Mistakes != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if math.Abs(s.AvgScore-50) > 1e-9 {
		t.Fatalf("expected avg score 50, got %f", s.AvgScore)
	}
	if math.Abs(s.AvgAccuracy-0.875) > 1e-9 {
		t.Fatalf("expected avg accuracy 0.875, got %f", s.AvgAccuracy)
	}
}

func TestRenderCurvesFitsWidth(t *testing.T) {
	var runs []model.RunAggregate
	for i := 0; i < 50; i++ {
		runs = append(runs, model.RunAggregate{Mode: "play", Score: i, Comparisons: 28, Mistakes: i % 3})
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, runs, 5, 40); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Learning Curves") || !strings.Contains(out, "Score") {
		t.Fatalf("missing curve output: %s", out)
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if strings.HasPrefix(line, "Score") && len(line) != 40 {
			t.Fatalf("expected score line width 40, got %d: %q", len(line), line)
		}
	}
}

func TestRenderRunTable(t *testing.T) {
	var buf bytes.Buffer
	runs := []model.RunAggregate{{
		EndedAt:     time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local),
		Mode:        "play",
		Size:        8,
		Score:       250,
		Comparisons: 28,
		Mistakes:    2,
		DurationMs:  61500,
	}}
	if err := RenderRunTable(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"2026-01-01 10:00", "play", "250", "93.3%", "61.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}
