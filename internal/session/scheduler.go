package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/tuisort/internal/engine"
)

// Playback is the autoplay scheduler state.
type Playback int

// Scheduler states.
const (
	Idle Playback = iota
	Running
	Paused
	Finished
)

func (p Playback) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("playback(%d)", int(p))
	}
}

// Speed is a named autoplay interval preset.
type Speed struct {
	Name     string
	Interval time.Duration
}

// Speed presets, slowest first.
var (
	SpeedSlow   = Speed{Name: "slow", Interval: 800 * time.Millisecond}
	SpeedNormal = Speed{Name: "normal", Interval: 400 * time.Millisecond}
	SpeedFast   = Speed{Name: "fast", Interval: 100 * time.Millisecond}
)

// Speeds lists the presets in cycling order.
var Speeds = []Speed{SpeedSlow, SpeedNormal, SpeedFast}

// ParseSpeed resolves a preset by name, case-insensitively.
func ParseSpeed(name string) (Speed, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, sp := range Speeds {
		if sp.Name == name {
			return sp, nil
		}
	}
	names := make([]string, 0, len(Speeds))
	for _, sp := range Speeds {
		names = append(names, sp.Name)
	}
	return Speed{}, fmt.Errorf("unknown speed %q (available: %s)", name, strings.Join(names, ", "))
}

// Next returns the following preset, wrapping around.
func (s Speed) Next() Speed {
	for i, sp := range Speeds {
		if sp.Name == s.Name {
			return Speeds[(i+1)%len(Speeds)]
		}
	}
	return SpeedNormal
}

// Tick is a scheduled autoplay firing. Only the most recently armed tick is live.
type Tick struct {
	Gen      uint64
	Interval time.Duration
}

// Scheduler is the autoplay state machine. At most one tick is pending at a time;
// every control action that leaves Running invalidates it before returning.
type Scheduler struct {
	state   Playback
	speed   Speed
	gen     uint64
	pending bool
}

// NewScheduler returns an idle scheduler at the given speed.
func NewScheduler(speed Speed) *Scheduler {
	return &Scheduler{speed: speed}
}

// State returns the current playback state.
func (s *Scheduler) State() Playback {
	return s.state
}

// Speed returns the current preset.
func (s *Scheduler) Speed() Speed {
	return s.speed
}

// Start moves Idle or Paused to Running and arms the first tick.
func (s *Scheduler) Start() (Tick, error) {
	switch s.state {
	case Idle, Paused:
		s.state = Running
		return s.arm(), nil
	case Running:
		return Tick{}, fmt.Errorf("%w: autoplay already running", engine.ErrInvalidState)
	default:
		return Tick{}, fmt.Errorf("%w: autoplay finished", engine.ErrInvalidState)
	}
}

// Pause moves Running to Paused and cancels the pending tick.
func (s *Scheduler) Pause() {
	if s.state != Running {
		return
	}
	s.cancel()
	s.state = Paused
}

// Reset cancels any pending tick and returns to Idle from any state.
func (s *Scheduler) Reset() {
	s.cancel()
	s.state = Idle
}

// Finish cancels any pending tick and enters Finished.
func (s *Scheduler) Finish() {
	s.cancel()
	s.state = Finished
}

// SetSpeed changes the preset. While Running the pending tick is replaced by a
// new one at the new interval, which is returned with ok set.
func (s *Scheduler) SetSpeed(speed Speed) (Tick, bool) {
	s.speed = speed
	if s.state != Running {
		return Tick{}, false
	}
	s.cancel()
	return s.arm(), true
}

// Accept consumes t if it is the live tick. Stale or cancelled ticks are rejected.
func (s *Scheduler) Accept(t Tick) bool {
	if s.state != Running || !s.pending || t.Gen != s.gen {
		return false
	}
	s.pending = false
	return true
}

// Rearm schedules the next tick after an accepted one.
func (s *Scheduler) Rearm() (Tick, bool) {
	if s.state != Running || s.pending {
		return Tick{}, false
	}
	return s.arm(), true
}

func (s *Scheduler) arm() Tick {
	s.gen++
	s.pending = true
	return Tick{Gen: s.gen, Interval: s.speed.Interval}
}

func (s *Scheduler) cancel() {
	s.gen++
	s.pending = false
}
