// Package stats contains run history calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/tuisort/internal/model"
)

const sparkChars = " .:-=+*#%@"

// RunMetrics computes decision accuracy and comparisons per minute for a run.
// Every correct decision counts as one comparison.
func RunMetrics(comparisons, mistakes int, durationMs int64) (accuracy, perMinute float64) {
	den := float64(comparisons + mistakes)
	if den > 0 {
		accuracy = float64(comparisons) / den
	}
	if durationMs > 0 {
		perMinute = float64(comparisons) / (float64(durationMs) / 60000.0)
	}
	return accuracy, perMinute
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := minMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	s := Summarize(runs)
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d (play %d, learn %d)", s.Runs, s.PlayRuns, s.Runs-s.PlayRuns),
		fmt.Sprintf("Avg Score: %.1f", s.AvgScore),
		fmt.Sprintf("Best Score: %d", s.BestScore),
		fmt.Sprintf("Avg Accuracy: %.2f%%", s.AvgAccuracy*100),
		fmt.Sprintf("Total Mistakes: %d", s.Mistakes),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Summary aggregates headline numbers over runs. Score and accuracy only
// consider play runs.
type Summary struct {
	Runs        int
	PlayRuns    int
	AvgScore    float64
	BestScore   int
	AvgAccuracy float64
	Mistakes    int
}

// Summarize computes a Summary.
func Summarize(runs []model.RunAggregate) Summary {
	s := Summary{Runs: len(runs)}
	var totalScore, totalAcc float64
	for _, r := range runs {
		if r.Mode != "play" {
			continue
		}
		s.PlayRuns++
		acc, _ := RunMetrics(r.Comparisons, r.Mistakes, r.DurationMs)
		totalScore += float64(r.Score)
		totalAcc += acc
		s.Mistakes += r.Mistakes
		if r.Score > s.BestScore {
			s.BestScore = r.Score
		}
	}
	if s.PlayRuns > 0 {
		s.AvgScore = totalScore / float64(s.PlayRuns)
		s.AvgAccuracy = totalAcc / float64(s.PlayRuns)
	}
	return s
}

// RenderRunTable prints one row per run.
func RenderRunTable(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	headers := []string{"Ended", "Mode", "Size", "Score", "Mistakes", "Accuracy", "Swaps", "Time (s)"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		acc, _ := RunMetrics(r.Comparisons, r.Mistakes, r.DurationMs)
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Mode,
			fmt.Sprintf("%d", r.Size),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Mistakes),
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%d", r.Swaps),
			fmt.Sprintf("%.1f", float64(r.DurationMs)/1000),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderPassTable prints per-pass aggregates.
func RenderPassTable(w io.Writer, aggs []model.PassAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No pass stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Pass (Windowed)"); err != nil {
		return err
	}
	headers := []string{"Pass", "Accuracy", "Comparisons", "Swaps", "Mistakes", "Runs"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		acc, _ := RunMetrics(agg.Comparisons, agg.Mistakes, 0)
		rows = append(rows, []string{
			fmt.Sprintf("%d", agg.Pass+1),
			fmt.Sprintf("%.2f%%", acc*100),
			fmt.Sprintf("%d", agg.Comparisons),
			fmt.Sprintf("%d", agg.Swaps),
			fmt.Sprintf("%d", agg.Mistakes),
			fmt.Sprintf("%d", agg.Runs),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func minMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
