// Package main provides the CLI entrypoint for tuisort.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuisort/internal/config"
	"github.com/verte-zerg/tuisort/internal/generator"
	"github.com/verte-zerg/tuisort/internal/model"
	"github.com/verte-zerg/tuisort/internal/session"
	"github.com/verte-zerg/tuisort/internal/store"
	"github.com/verte-zerg/tuisort/internal/tui"
)

const (
	defaultMode        = "learn"
	defaultSpeed       = "normal"
	defaultLogLevel    = "info"
	defaultCurveWindow = 10
	maxArraySize       = 64
)

var (
	practiceMode     string
	practiceSize     int
	practiceMin      int
	practiceMax      int
	practiceSpeed    string
	practiceSeed     int64
	practiceRecord   bool
	practiceNoRecord bool

	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuisort",
		Short:         "Interactive bubble sort trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "start mode (learn or play)")
	rootCmd.Flags().IntVar(&practiceSize, "size", session.DefaultSize, "number of values to sort")
	rootCmd.Flags().IntVar(&practiceMin, "min", session.DefaultMin, "smallest generated value")
	rootCmd.Flags().IntVar(&practiceMax, "max", session.DefaultMax, "largest generated value")
	rootCmd.Flags().StringVar(&practiceSpeed, "speed", defaultSpeed, "autoplay speed (slow, normal, fast)")
	rootCmd.Flags().Int64Var(&practiceSeed, "seed", 0, "random seed for reproducible arrays (0 = time based)")
	rootCmd.Flags().BoolVar(&practiceNoRecord, "no-record", false, "do not save finished runs to history")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTraceCmd())
	rootCmd.AddCommand(newExplainCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Session.Mode)
	applyIntConfig(cmd, "size", &practiceSize, fileCfg.Session.Size)
	applyIntConfig(cmd, "min", &practiceMin, fileCfg.Session.Min)
	applyIntConfig(cmd, "max", &practiceMax, fileCfg.Session.Max)
	applyStringConfig(cmd, "speed", &practiceSpeed, fileCfg.Session.Speed)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	practiceRecord = !practiceNoRecord
	if fileCfg.Session.Record != nil && !cmd.Flags().Changed("no-record") {
		practiceRecord = *fileCfg.Session.Record
	}

	cfg := model.Config{
		Mode:   practiceMode,
		Size:   practiceSize,
		Min:    practiceMin,
		Max:    practiceMax,
		Speed:  practiceSpeed,
		Seed:   practiceSeed,
		Record: practiceRecord,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tuisort needs an interactive terminal (try: tuisort trace)")
	}

	closeLog, err := setupLogging(logLevel, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Error("failed to close db", "err", cerr)
		}
	}()

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	log.Info("session started", "mode", cfg.Mode, "size", cfg.Size, "speed", cfg.Speed, "record", cfg.Record)
	program := tea.NewProgram(tui.NewModel(sess, st, cfg.Record), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newSession(cfg model.Config) (*session.Session, error) {
	mode, err := session.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	speed, err := session.ParseSpeed(cfg.Speed)
	if err != nil {
		return nil, err
	}
	var src session.Source = generator.New()
	if cfg.Seed != 0 {
		src = generator.NewSeeded(cfg.Seed)
	}
	return session.New(session.Options{
		Mode:   mode,
		Size:   cfg.Size,
		Min:    cfg.Min,
		Max:    cfg.Max,
		Speed:  speed,
		Source: src,
	})
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuisort configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# mode = %q          # learn or play
# size = %d              # Number of values (2-%d)
# min = %d              # Smallest generated value
# max = %d             # Largest generated value
# speed = %q       # Autoplay speed: slow, normal or fast
# record = true          # Save finished runs to history

[log]
# level = %q         # debug, info, warn or error
`,
		defaultMode,
		session.DefaultSize,
		maxArraySize,
		session.DefaultMin,
		session.DefaultMax,
		defaultSpeed,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if _, err := session.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("--mode: %w", err)
	}
	if _, err := session.ParseSpeed(cfg.Speed); err != nil {
		return fmt.Errorf("--speed: %w", err)
	}
	if cfg.Size < 2 || cfg.Size > maxArraySize {
		return fmt.Errorf("--size must be between 2 and %d", maxArraySize)
	}
	if cfg.Min < 1 {
		return fmt.Errorf("--min must be >= 1")
	}
	if cfg.Min > cfg.Max {
		return fmt.Errorf("--min must be <= --max")
	}
	return nil
}
