// Package lesson holds the bubble sort primer shown by tuisort explain.
package lesson

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/verte-zerg/tuisort/internal/engine"
)

//go:embed lesson.md
var primer string

// ExampleValues is the array used for the worked example.
var ExampleValues = []int{5, 3, 8, 1}

// Markdown returns the lesson followed by a worked example over values.
func Markdown(values []int) (string, error) {
	example, err := Walkthrough(values)
	if err != nil {
		return "", err
	}
	return primer + "\n" + example, nil
}

// Walkthrough narrates every comparison of a full run over values as markdown.
func Walkthrough(values []int) (string, error) {
	if len(values) < 2 {
		return "", fmt.Errorf("walkthrough needs at least 2 values, got %d", len(values))
	}
	arr := engine.Array(values).Clone()
	cursor := engine.InitialCursor(arr.Len())
	var stats engine.Stats

	var b strings.Builder
	fmt.Fprintf(&b, "## Worked example: %s\n\n", formatArray(arr))
	b.WriteString("| Step | Pass | Pair | Decision | Array |\n")
	b.WriteString("|------|------|------|----------|-------|\n")
	step := 0
	for !cursor.IsTerminal() {
		pass := cursor.Outer
		res, err := engine.Step(arr, cursor, stats)
		if err != nil {
			return "", err
		}
		step++
		decision := "pass"
		if res.Swapped {
			decision = "swap"
		}
		fmt.Fprintf(&b, "| %d | %d | %d vs %d | %s | %s |\n",
			step, pass+1, res.Pair.LeftValue, res.Pair.RightValue, decision, formatArray(res.Array))
		arr, cursor, stats = res.Array, res.Cursor, res.Stats
	}
	fmt.Fprintf(&b, "\n%d comparisons, %d swaps.\n", stats.Comparisons, stats.Swaps)
	return b.String(), nil
}

// Render formats markdown for the terminal. style is a glamour style name; an
// empty style picks one from the terminal background.
func Render(markdown string, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

func formatArray(arr engine.Array) string {
	parts := make([]string, arr.Len())
	for i, v := range arr {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
