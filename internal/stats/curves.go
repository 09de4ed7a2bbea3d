package stats

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/verte-zerg/tuisort/internal/model"
)

const (
	minCurveWidth       = 10
	curveLabelWidth     = 10
	terminalWidthBackup = 80
)

// Series is a named data series.
type Series struct {
	Name   string
	Values []float64
}

// RenderCurves prints score and accuracy learning curves for play runs.
func RenderCurves(w io.Writer, runs []model.RunAggregate, window, totalWidth int) error {
	var scores, accs []float64
	for _, r := range runs {
		if r.Mode != "play" {
			continue
		}
		acc, _ := RunMetrics(r.Comparisons, r.Mistakes, r.DurationMs)
		scores = append(scores, float64(r.Score))
		accs = append(accs, acc*100)
	}
	if len(scores) == 0 {
		return nil
	}
	return RenderSeries(w, "Learning Curves", []Series{
		{Name: "Score", Values: MovingAverage(scores, window)},
		{Name: "Accuracy", Values: MovingAverage(accs, window)},
	}, totalWidth)
}

// RenderSeries prints one sparkline row per series, resampled to fit the width,
// followed by the min/max of each series.
func RenderSeries(w io.Writer, title string, series []Series, totalWidth int) error {
	if totalWidth <= 0 {
		totalWidth = autoWidth()
	}
	width := CurveWidthFor(totalWidth)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		minVal, maxVal := minMax(s.Values)
		line := fmt.Sprintf("%-*s%s", curveLabelWidth, s.Name, Sparkline(resample(s.Values, width)))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-*smin %.1f  max %.1f  last %.1f\n", curveLabelWidth, "", minVal, maxVal, s.Values[len(s.Values)-1]); err != nil {
			return err
		}
	}
	return nil
}

// CurveWidthFor returns the sparkline width that fits totalWidth columns.
func CurveWidthFor(totalWidth int) int {
	width := totalWidth - curveLabelWidth
	if width < minCurveWidth {
		return minCurveWidth
	}
	return width
}

func resample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func autoWidth() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
