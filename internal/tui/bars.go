package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuisort/internal/session"
)

type barKind int

const (
	barDefault barKind = iota
	barSettled
	barActive
	barCorrect
	barIncorrect
)

var barStyles = map[barKind]lipgloss.Style{
	barDefault:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4C8DF6")),
	barSettled:   lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
	barActive:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FACC15")),
	barCorrect:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ADE80")),
	barIncorrect: lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")),
}

const (
	barGlyph    = "█"
	maxColWidth = 5
	minBarRows  = 3
)

func classifyBar(i int, st session.State) barKind {
	size := len(st.Values)
	if st.Complete || i >= size-st.Settled {
		return barSettled
	}
	if i == st.Cursor.Left() || i == st.Cursor.Right() {
		switch st.Feedback.Kind {
		case session.FeedbackCorrect:
			return barCorrect
		case session.FeedbackIncorrect:
			return barIncorrect
		default:
			return barActive
		}
	}
	return barDefault
}

func columnWidth(count, width int) int {
	if count == 0 {
		return 0
	}
	if width <= 0 {
		return maxColWidth
	}
	col := width / count
	if col > maxColWidth {
		col = maxColWidth
	}
	if col < 1 {
		col = 1
	}
	return col
}

// renderBars draws the values as vertical bars with value labels and L/R markers
// under the pair being compared.
func renderBars(st session.State, width, rows int) string {
	if len(st.Values) == 0 {
		return ""
	}
	if rows < minBarRows {
		rows = minBarRows
	}
	col := columnWidth(len(st.Values), width)
	barWidth := col - 1
	if barWidth < 1 {
		barWidth = 1
	}
	maxVal := 0
	for _, v := range st.Values {
		if v > maxVal {
			maxVal = v
		}
	}
	heights := make([]int, len(st.Values))
	for i, v := range st.Values {
		h := 1
		if maxVal > 0 {
			h = (v*rows + maxVal - 1) / maxVal
		}
		if h < 1 {
			h = 1
		}
		heights[i] = h
	}

	lines := make([]string, 0, rows+2)
	for r := rows; r >= 1; r-- {
		var b strings.Builder
		for i := range st.Values {
			cell := strings.Repeat(" ", barWidth)
			if heights[i] >= r {
				cell = barStyles[classifyBar(i, st)].Render(strings.Repeat(barGlyph, barWidth))
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", col-barWidth))
		}
		lines = append(lines, b.String())
	}

	var labels, markers strings.Builder
	for i, v := range st.Values {
		labels.WriteString(fitCell(centerCell(strconv.Itoa(v), barWidth), col))
		marker := ""
		if !st.Complete {
			switch i {
			case st.Cursor.Left():
				marker = "L"
			case st.Cursor.Right():
				marker = "R"
			}
		}
		markers.WriteString(fitCell(centerCell(marker, barWidth), col))
	}
	lines = append(lines, labels.String(), markers.String())
	return strings.Join(lines, "\n")
}
