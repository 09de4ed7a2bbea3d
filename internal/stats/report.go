package stats

import (
	"context"

	"github.com/verte-zerg/tuisort/internal/model"
	"github.com/verte-zerg/tuisort/internal/store"
)

// Report contains precomputed data for history rendering.
type Report struct {
	Runs         []model.RunAggregate
	WindowRunIDs []int64
	PassAggsAll  []model.PassAggregate
	PassAggsWin  []model.PassAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}

	allIDs := runIDs(runs)
	windowIDs := lastRunIDs(runs, cfg.CurveWindow)
	passAll, err := st.ListPassAggregatesForRuns(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	passWin, err := st.ListPassAggregatesForRuns(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Runs:         runs,
		WindowRunIDs: windowIDs,
		PassAggsAll:  passAll,
		PassAggsWin:  passWin,
	}, nil
}

// HardestPass returns the pass with the highest mistake rate, if any mistakes exist.
func HardestPass(aggs []model.PassAggregate) (model.PassAggregate, bool) {
	var best model.PassAggregate
	bestRate := 0.0
	found := false
	for _, agg := range aggs {
		if agg.Mistakes == 0 {
			continue
		}
		rate := float64(agg.Mistakes) / float64(agg.Comparisons+agg.Mistakes)
		if !found || rate > bestRate {
			best, bestRate, found = agg, rate, true
		}
	}
	return best, found
}

func runIDs(runs []model.RunAggregate) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.RunID
	}
	return ids
}

func lastRunIDs(runs []model.RunAggregate, window int) []int64 {
	if window <= 0 || len(runs) <= window {
		return runIDs(runs)
	}
	return runIDs(runs[len(runs)-window:])
}
