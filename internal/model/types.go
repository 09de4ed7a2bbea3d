// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Mode   string
	Size   int
	Min    int
	Max    int
	Speed  string
	Seed   int64
	Record bool
}

// StatsConfig defines filters and options for history output.
type StatsConfig struct {
	Mode        string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// RunRecord captures a run that reached the sorted state.
type RunRecord struct {
	UUID        string
	StartedAt   time.Time
	EndedAt     time.Time
	Mode        string
	Size        int
	MinValue    int
	MaxValue    int
	Speed       string
	Comparisons int
	Swaps       int
	Score       int
	Mistakes    int
	DurationMs  int64
}

// PassStats stores per-pass counters for a run.
type PassStats struct {
	Pass        int
	Comparisons int
	Swaps       int
	Mistakes    int
}

// PassAggregate aggregates pass counters across runs.
type PassAggregate struct {
	Pass        int
	Comparisons int
	Swaps       int
	Mistakes    int
	Runs        int
}

// RunAggregate summarizes a run for reporting.
type RunAggregate struct {
	RunID       int64     `yaml:"-"`
	UUID        string    `yaml:"uuid"`
	EndedAt     time.Time `yaml:"ended_at"`
	Mode        string    `yaml:"mode"`
	Size        int       `yaml:"size"`
	Comparisons int       `yaml:"comparisons"`
	Swaps       int       `yaml:"swaps"`
	Score       int       `yaml:"score"`
	Mistakes    int       `yaml:"mistakes"`
	DurationMs  int64     `yaml:"duration_ms"`
}
