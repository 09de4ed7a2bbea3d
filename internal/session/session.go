// Package session drives the sorting engine for the learn and play modes.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuisort/internal/engine"
	"github.com/verte-zerg/tuisort/internal/model"
)

// Mode selects who drives the session.
type Mode string

// Session modes.
const (
	ModeLearn Mode = "learn"
	ModePlay  Mode = "play"
)

// ParseMode resolves a mode by name.
func ParseMode(name string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeLearn:
		return ModeLearn, nil
	case ModePlay:
		return ModePlay, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want learn or play)", name)
	}
}

// Defaults for new sessions.
const (
	DefaultSize = 8
	DefaultMin  = 10
	DefaultMax  = 100
)

// Source produces the initial array for a run.
type Source interface {
	Array(size, minVal, maxVal int) (engine.Array, error)
}

// Options configures a session.
type Options struct {
	Mode   Mode
	Size   int
	Min    int
	Max    int
	Speed  Speed
	Source Source
	Now    func() time.Time
}

// State is the authoritative snapshot the UI renders.
type State struct {
	RunID    string
	Mode     Mode
	Values   []int
	Cursor   engine.Cursor
	Stats    engine.Stats
	Playback Playback
	Speed    Speed
	Feedback Feedback
	Message  string
	Settled  int
	Done     int
	Total    int
	Complete bool
}

// Update is the result of a session operation. Tick and Expiry, when set, must be
// scheduled by the caller and handed back through HandleTick and ExpireFeedback.
type Update struct {
	State    State
	Tick     *Tick
	Expiry   *Expiry
	Verdict  *engine.Verdict
	Finished bool
}

// Session owns the array, cursor and stats of one run.
type Session struct {
	opts      Options
	mode      Mode
	array     engine.Array
	cursor    engine.Cursor
	stats     engine.Stats
	scheduler *Scheduler
	feedback  feedbackTimer
	message   string
	passes    map[int]*model.PassStats
	runID     string
	startedAt time.Time
	endedAt   time.Time
}

// New validates opts and creates a session with a fresh array.
func New(opts Options) (*Session, error) {
	if opts.Mode == "" {
		opts.Mode = ModeLearn
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Size < 2 {
		return nil, fmt.Errorf("size must be >= 2, got %d", opts.Size)
	}
	if opts.Min > opts.Max {
		return nil, fmt.Errorf("min %d is greater than max %d", opts.Min, opts.Max)
	}
	if opts.Source == nil {
		return nil, errors.New("array source is required")
	}
	if opts.Speed.Interval <= 0 {
		opts.Speed = SpeedNormal
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{
		opts:      opts,
		mode:      opts.Mode,
		scheduler: NewScheduler(opts.Speed),
	}
	if err := s.reinit(); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns the current snapshot.
func (s *Session) State() State {
	size := len(s.array)
	return State{
		RunID:    s.runID,
		Mode:     s.mode,
		Values:   s.array.Clone(),
		Cursor:   s.cursor,
		Stats:    s.stats,
		Playback: s.scheduler.State(),
		Speed:    s.scheduler.Speed(),
		Feedback: s.feedback.current,
		Message:  s.message,
		Settled:  s.cursor.Settled(size),
		Done:     engine.ComparisonsDone(s.cursor, size),
		Total:    engine.TotalComparisons(size),
		Complete: s.IsComplete(),
	}
}

// IsComplete reports whether no comparisons remain.
func (s *Session) IsComplete() bool {
	return s.cursor.IsTerminal()
}

// StepOnce performs a single learn-mode comparison. Allowed only while autoplay
// is idle or paused.
func (s *Session) StepOnce() (Update, error) {
	if s.mode != ModeLearn {
		return s.update(), fmt.Errorf("%w: step is only available in learn mode", engine.ErrInvalidState)
	}
	if s.IsComplete() {
		return s.update(), fmt.Errorf("%w: array is already sorted", engine.ErrInvalidState)
	}
	switch s.scheduler.State() {
	case Idle, Paused:
	default:
		return s.update(), fmt.Errorf("%w: pause autoplay before stepping", engine.ErrInvalidState)
	}
	return s.advance()
}

// SetAutoplay starts or pauses learn-mode autoplay.
func (s *Session) SetAutoplay(running bool) (Update, error) {
	if !running {
		s.scheduler.Pause()
		return s.update(), nil
	}
	if s.mode != ModeLearn {
		return s.update(), fmt.Errorf("%w: autoplay is only available in learn mode", engine.ErrInvalidState)
	}
	if s.IsComplete() {
		return s.update(), fmt.Errorf("%w: array is already sorted", engine.ErrInvalidState)
	}
	if s.scheduler.State() == Running {
		return s.update(), nil
	}
	tick, err := s.scheduler.Start()
	if err != nil {
		return s.update(), err
	}
	u := s.update()
	u.Tick = &tick
	return u, nil
}

// ToggleAutoplay flips between running and paused.
func (s *Session) ToggleAutoplay() (Update, error) {
	return s.SetAutoplay(s.scheduler.State() != Running)
}

// HandleTick applies an autoplay firing. Stale ticks are ignored and reported
// with ok == false.
func (s *Session) HandleTick(t Tick) (Update, bool) {
	if !s.scheduler.Accept(t) {
		return s.update(), false
	}
	u, err := s.advance()
	if err != nil {
		s.scheduler.Finish()
		s.message = err.Error()
		return s.update(), true
	}
	if next, ok := s.scheduler.Rearm(); ok {
		u.Tick = &next
	}
	return u, true
}

// SetSpeed selects a speed preset by name.
func (s *Session) SetSpeed(name string) (Update, error) {
	speed, err := ParseSpeed(name)
	if err != nil {
		return s.update(), err
	}
	s.opts.Speed = speed
	tick, rearmed := s.scheduler.SetSpeed(speed)
	u := s.update()
	if rearmed {
		u.Tick = &tick
	}
	return u, nil
}

// CycleSpeed moves to the next speed preset.
func (s *Session) CycleSpeed() (Update, error) {
	return s.SetSpeed(s.scheduler.Speed().Next().Name)
}

// SubmitDecision grades a play-mode decision for the current pair.
func (s *Session) SubmitDecision(action engine.Action) (Update, error) {
	if s.mode != ModePlay {
		return s.update(), fmt.Errorf("%w: decisions are only accepted in play mode", engine.ErrInvalidState)
	}
	if s.IsComplete() {
		return s.update(), fmt.Errorf("%w: game is over", engine.ErrInvalidState)
	}
	pass := s.cursor.Outer
	verdict, err := engine.Submit(action, s.array, s.cursor, s.stats)
	if err != nil {
		return s.update(), err
	}
	s.markStarted()
	res := verdict.Step
	var expiry Expiry
	if verdict.Correct {
		s.array, s.cursor, s.stats = res.Array, res.Cursor, res.Stats
		s.recordComparison(pass, res.Swapped)
		s.message = playMessage(verdict)
		expiry = s.feedback.show(FeedbackCorrect, "Great job!")
	} else {
		s.stats = res.Stats
		s.passStats(pass).Mistakes++
		s.message = "Oops! " + verdict.Explanation
		expiry = s.feedback.show(FeedbackIncorrect, "Incorrect")
	}
	finished := s.finishIfTerminal()
	if finished {
		s.message = fmt.Sprintf("Game over! Final score: %d", s.stats.Score)
	}
	u := s.update()
	u.Verdict = &verdict
	u.Expiry = &expiry
	u.Finished = finished
	return u, nil
}

// ExpireFeedback clears feedback generation gen if it is still displayed.
func (s *Session) ExpireFeedback(gen uint64) (Update, bool) {
	ok := s.feedback.expire(gen)
	return s.update(), ok
}

// Reset cancels pending timers and starts a new run in the same mode.
func (s *Session) Reset() (Update, error) {
	if err := s.reinit(); err != nil {
		return s.update(), err
	}
	return s.update(), nil
}

// SetMode switches mode and starts a new run.
func (s *Session) SetMode(mode Mode) (Update, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return s.update(), err
	}
	s.mode = mode
	s.opts.Mode = mode
	return s.Reset()
}

// ToggleMode switches between learn and play.
func (s *Session) ToggleMode() (Update, error) {
	if s.mode == ModeLearn {
		return s.SetMode(ModePlay)
	}
	return s.SetMode(ModeLearn)
}

// Record returns the run record for a completed run.
func (s *Session) Record() (model.RunRecord, []model.PassStats, error) {
	if !s.IsComplete() {
		return model.RunRecord{}, nil, fmt.Errorf("%w: run is not complete", engine.ErrInvalidState)
	}
	rec := model.RunRecord{
		UUID:        s.runID,
		StartedAt:   s.startedAt,
		EndedAt:     s.endedAt,
		Mode:        string(s.mode),
		Size:        len(s.array),
		MinValue:    s.opts.Min,
		MaxValue:    s.opts.Max,
		Speed:       s.scheduler.Speed().Name,
		Comparisons: s.stats.Comparisons,
		Swaps:       s.stats.Swaps,
		Score:       s.stats.Score,
		Mistakes:    s.stats.Mistakes,
		DurationMs:  s.endedAt.Sub(s.startedAt).Milliseconds(),
	}
	passes := make([]model.PassStats, 0, len(s.passes))
	for pass := 0; pass < len(s.array); pass++ {
		if ps, ok := s.passes[pass]; ok {
			passes = append(passes, *ps)
		}
	}
	return rec, passes, nil
}

// Summary renders a one-line description of the run.
func (s *Session) Summary() string {
	if s.mode == ModePlay {
		return fmt.Sprintf("tuisort play: %d values sorted, score %d, %d mistakes, %d swaps",
			len(s.array), s.stats.Score, s.stats.Mistakes, s.stats.Swaps)
	}
	return fmt.Sprintf("tuisort learn: %d values sorted with %d comparisons and %d swaps",
		len(s.array), s.stats.Comparisons, s.stats.Swaps)
}

func (s *Session) advance() (Update, error) {
	pass := s.cursor.Outer
	res, err := engine.Step(s.array, s.cursor, s.stats)
	if err != nil {
		return s.update(), err
	}
	s.markStarted()
	s.array, s.cursor, s.stats = res.Array, res.Cursor, res.Stats
	s.recordComparison(pass, res.Swapped)
	s.message = learnMessage(res)
	finished := s.finishIfTerminal()
	u := s.update()
	u.Finished = finished
	return u, nil
}

func (s *Session) finishIfTerminal() bool {
	if !s.IsComplete() {
		return false
	}
	s.endedAt = s.opts.Now()
	s.scheduler.Finish()
	return true
}

func (s *Session) reinit() error {
	s.scheduler.Reset()
	s.feedback.cancel()
	arr, err := s.opts.Source.Array(s.opts.Size, s.opts.Min, s.opts.Max)
	if err != nil {
		return fmt.Errorf("failed to build array: %w", err)
	}
	if len(arr) < 2 {
		return fmt.Errorf("array source returned %d values, need at least 2", len(arr))
	}
	s.array = arr
	s.cursor = engine.InitialCursor(len(arr))
	s.stats.Reset()
	s.passes = map[int]*model.PassStats{}
	s.runID = uuid.NewString()
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	if s.mode == ModePlay {
		s.message = "Is the left bar taller than the right? Swap or pass."
	} else {
		s.message = "Press play to start sorting."
	}
	return nil
}

func (s *Session) markStarted() {
	if s.startedAt.IsZero() {
		s.startedAt = s.opts.Now()
	}
}

func (s *Session) recordComparison(pass int, swapped bool) {
	ps := s.passStats(pass)
	ps.Comparisons++
	if swapped {
		ps.Swaps++
	}
}

func (s *Session) passStats(pass int) *model.PassStats {
	ps, ok := s.passes[pass]
	if !ok {
		ps = &model.PassStats{Pass: pass}
		s.passes[pass] = ps
	}
	return ps
}

func (s *Session) update() Update {
	return Update{State: s.State()}
}
