package stats

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuisort/internal/model"
	"github.com/verte-zerg/tuisort/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "tuisort.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	var ids []int64
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		run := model.RunRecord{
			UUID:        fmt.Sprintf("run-%d", i),
			StartedAt:   start,
			EndedAt:     end,
			Mode:        "play",
			Size:        4,
			MinValue:    10,
			MaxValue:    100,
			Speed:       "normal",
			Comparisons: 6,
			Swaps:       2,
			Score:       55,
			Mistakes:    1,
			DurationMs:  end.Sub(start).Milliseconds(),
		}
		passes := []model.PassStats{
			{Pass: 0, Comparisons: 3, Swaps: 1, Mistakes: 1},
			{Pass: 1, Comparisons: 2, Swaps: 1},
		}
		id, err := st.InsertRun(ctx, run, passes)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	cfg := model.StatsConfig{
		Mode:        "play",
		Last:        2,
		CurveWindow: 1,
	}
	report, err := BuildReport(ctx, st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(report.Runs))
	}
	if report.Runs[0].RunID != ids[1] || report.Runs[1].RunID != ids[2] {
		t.Fatalf("unexpected run ids: %+v", report.Runs)
	}
	if len(report.WindowRunIDs) != 1 || report.WindowRunIDs[0] != ids[2] {
		t.Fatalf("unexpected window run ids: %v", report.WindowRunIDs)
	}
	if len(report.PassAggsAll) != 2 || report.PassAggsAll[0].Runs != 2 {
		t.Fatalf("unexpected pass aggregates: %+v", report.PassAggsAll)
	}
	if len(report.PassAggsWin) != 2 || report.PassAggsWin[0].Runs != 1 {
		t.Fatalf("unexpected windowed pass aggregates: %+v", report.PassAggsWin)
	}
}

func TestHardestPass(t *testing.T) {
	aggs := []model.PassAggregate{
		{Pass: 0, Comparisons: 10, Mistakes: 1},
		{Pass: 1, Comparisons: 4, Mistakes: 4},
		{Pass: 2, Comparisons: 2},
	}
	got, ok := HardestPass(aggs)
	if !ok || got.Pass != 1 {
		t.Fatalf("expected pass 1, got %+v ok=%v", got, ok)
	}
	if _, ok := HardestPass(aggs[2:]); ok {
		t.Fatalf("expected no hardest pass without mistakes")
	}
}
