package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuisort/internal/generator"
	"github.com/verte-zerg/tuisort/internal/lesson"
	"github.com/verte-zerg/tuisort/internal/model"
	"github.com/verte-zerg/tuisort/internal/session"
)

var (
	traceSize   int
	traceMin    int
	traceMax    int
	traceSeed   int64
	traceValues string

	explainWidth int
	explainStyle string
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a narrated learn-mode run without the UI",
		Args:  cobra.NoArgs,
		RunE:  runTraceCmd,
	}
	cmd.Flags().IntVar(&traceSize, "size", session.DefaultSize, "number of values to sort")
	cmd.Flags().IntVar(&traceMin, "min", session.DefaultMin, "smallest generated value")
	cmd.Flags().IntVar(&traceMax, "max", session.DefaultMax, "largest generated value")
	cmd.Flags().Int64Var(&traceSeed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&traceValues, "values", "", "comma separated values to sort instead of a random array")
	return cmd
}

func runTraceCmd(cmd *cobra.Command, _ []string) error {
	if _, err := setupLogging(logLevel, ""); err != nil {
		return err
	}
	cfg := model.Config{
		Mode:  string(session.ModeLearn),
		Size:  traceSize,
		Min:   traceMin,
		Max:   traceMax,
		Speed: defaultSpeed,
		Seed:  traceSeed,
	}
	var src session.Source
	if traceValues != "" {
		values, err := parseValues(traceValues)
		if err != nil {
			return err
		}
		cfg.Size = len(values)
		cfg.Min, cfg.Max = 1, 1
		for _, v := range values {
			if v > cfg.Max {
				cfg.Max = v
			}
		}
		src = generator.Fixed(values)
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if src == nil {
		if cfg.Seed != 0 {
			src = generator.NewSeeded(cfg.Seed)
		} else {
			src = generator.New()
		}
	}
	sess, err := session.New(session.Options{
		Mode:   session.ModeLearn,
		Size:   cfg.Size,
		Min:    cfg.Min,
		Max:    cfg.Max,
		Source: src,
	})
	if err != nil {
		return err
	}
	log.Debug("trace started", "size", cfg.Size, "seed", cfg.Seed)
	return writeTrace(cmd.OutOrStdout(), sess)
}

func writeTrace(w io.Writer, sess *session.Session) error {
	st := sess.State()
	if _, err := fmt.Fprintf(w, "start    %v\n", st.Values); err != nil {
		return err
	}
	for !sess.IsComplete() {
		u, err := sess.StepOnce()
		if err != nil {
			return err
		}
		st = u.State
		if _, err := fmt.Fprintf(w, "%3d/%-3d  %v  %s\n", st.Done, st.Total, st.Values, st.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "done     %d comparisons, %d swaps\n", st.Stats.Comparisons, st.Stats.Swaps)
	return err
}

func parseValues(input string) ([]int, error) {
	parts := strings.Split(input, ",")
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid --values entry %q", part)
		}
		if v < 1 {
			return nil, fmt.Errorf("--values entries must be >= 1, got %d", v)
		}
		values = append(values, v)
	}
	return values, nil
}

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain bubble sort with a worked example",
		Args:  cobra.NoArgs,
		RunE:  runExplainCmd,
	}
	cmd.Flags().IntVar(&explainWidth, "width", 0, "wrap width (0 = terminal width)")
	cmd.Flags().StringVar(&explainStyle, "style", "", "glamour style (dark, light, notty; empty = auto)")
	return cmd
}

func runExplainCmd(cmd *cobra.Command, _ []string) error {
	width := explainWidth
	style := explainStyle
	fd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(fd)
	if width <= 0 {
		width = 80
		if isTTY {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
		}
	}
	if style == "" && !isTTY {
		style = "notty"
	}
	md, err := lesson.Markdown(lesson.ExampleValues)
	if err != nil {
		return err
	}
	out, err := lesson.Render(md, width, style)
	if err != nil {
		return fmt.Errorf("failed to render lesson: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
