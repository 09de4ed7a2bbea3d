package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuisort/internal/config"
	"github.com/verte-zerg/tuisort/internal/model"
	"github.com/verte-zerg/tuisort/internal/stats"
	"github.com/verte-zerg/tuisort/internal/statsui"
	"github.com/verte-zerg/tuisort/internal/store"
)

var (
	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	historyFormat    string
)

type historySummary struct {
	Runs        int     `yaml:"runs"`
	PlayRuns    int     `yaml:"play_runs"`
	AvgScore    float64 `yaml:"avg_score"`
	BestScore   int     `yaml:"best_score"`
	AvgAccuracy float64 `yaml:"avg_accuracy"`
	Mistakes    int     `yaml:"mistakes"`
}

type historyPass struct {
	Pass        int `yaml:"pass"`
	Comparisons int `yaml:"comparisons"`
	Swaps       int `yaml:"swaps"`
	Mistakes    int `yaml:"mistakes"`
	Runs        int `yaml:"runs"`
}

type historyExport struct {
	Summary historySummary       `yaml:"summary"`
	Passes  []historyPass        `yaml:"passes"`
	Runs    []model.RunAggregate `yaml:"runs"`
}

func addHistoryFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter (learn or play)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse run history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	addHistoryFilterFlags(cmd)
	return cmd
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print run history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	addHistoryFilterFlags(cmd)
	cmd.Flags().StringVar(&historyFormat, "format", "table", "output format (table or yaml)")
	return cmd
}

func historyConfig() (model.StatsConfig, error) {
	mode := strings.ToLower(strings.TrimSpace(statsMode))
	if mode != "" && mode != "learn" && mode != "play" {
		return model.StatsConfig{}, fmt.Errorf("invalid --mode value %q (want learn or play)", statsMode)
	}
	var since *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, errors.New("--last must be >= 0")
	}
	if statsCurveWindow < 1 {
		return model.StatsConfig{}, errors.New("--curve-window must be >= 1")
	}
	return model.StatsConfig{
		Mode:        mode,
		Since:       since,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}, nil
}

func openHistoryStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			log.Error("failed to close db", "err", cerr)
		}
	}, nil
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tuisort stats needs an interactive terminal (try: tuisort history)")
	}
	closeLog, err := setupLogging(logLevel, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	st, closeStore, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer closeStore()

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(historyFormat))
	if format != "table" && format != "yaml" {
		return fmt.Errorf("invalid --format value %q (want table or yaml)", historyFormat)
	}
	if _, err := setupLogging(logLevel, ""); err != nil {
		return err
	}

	st, closeStore, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	if format == "yaml" {
		return writeHistoryYAML(out, report)
	}
	return writeHistoryTable(out, report, cfg.CurveWindow)
}

func writeHistoryTable(w io.Writer, report stats.Report, window int) error {
	if err := stats.RenderSummary(w, report.Runs); err != nil {
		return err
	}
	if len(report.Runs) == 0 {
		return nil
	}
	if err := stats.RenderRunTable(w, report.Runs); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := stats.RenderPassTable(w, report.PassAggsWin); err != nil {
		return err
	}
	return stats.RenderCurves(w, report.Runs, window, 0)
}

func writeHistoryYAML(w io.Writer, report stats.Report) error {
	sum := stats.Summarize(report.Runs)
	export := historyExport{
		Summary: historySummary{
			Runs:        sum.Runs,
			PlayRuns:    sum.PlayRuns,
			AvgScore:    sum.AvgScore,
			BestScore:   sum.BestScore,
			AvgAccuracy: sum.AvgAccuracy,
			Mistakes:    sum.Mistakes,
		},
		Passes: make([]historyPass, 0, len(report.PassAggsAll)),
		Runs:   report.Runs,
	}
	for _, agg := range report.PassAggsAll {
		export.Passes = append(export.Passes, historyPass{
			Pass:        agg.Pass + 1,
			Comparisons: agg.Comparisons,
			Swaps:       agg.Swaps,
			Mistakes:    agg.Mistakes,
			Runs:        agg.Runs,
		})
	}
	if export.Runs == nil {
		export.Runs = []model.RunAggregate{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return enc.Close()
}
