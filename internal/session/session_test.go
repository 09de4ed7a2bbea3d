package session

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/tuisort/internal/engine"
	"github.com/verte-zerg/tuisort/internal/generator"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestSession(t *testing.T, mode Mode, values ...int) *Session {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	s, err := New(Options{
		Mode:   mode,
		Size:   len(values),
		Min:    1,
		Max:    100,
		Source: generator.Fixed(values),
		Now:    clock.Now,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func TestNewRejectsBadOptions(t *testing.T) {
	src := generator.NewSeeded(1)
	cases := []Options{
		{Size: 1, Min: 10, Max: 100, Source: src},
		{Size: 8, Min: 50, Max: 10, Source: src},
		{Size: 8, Min: 10, Max: 100},
		{Mode: "watch", Size: 8, Min: 10, Max: 100, Source: src},
	}
	for i, opts := range cases {
		if _, err := New(opts); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	s, err := New(Options{Size: DefaultSize, Min: DefaultMin, Max: DefaultMax, Source: generator.NewSeeded(5)})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	st := s.State()
	if st.Mode != ModeLearn || st.Speed != SpeedNormal || st.Playback != Idle {
		t.Fatalf("unexpected defaults: %+v", st)
	}
	if len(st.Values) != DefaultSize || st.Total != 28 || st.Done != 0 {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	for _, v := range st.Values {
		if v < DefaultMin || v > DefaultMax {
			t.Fatalf("value %d outside defaults", v)
		}
	}
}

func TestStepOnceLearnMode(t *testing.T) {
	s := newTestSession(t, ModeLearn, 5, 3, 8, 1)
	u, err := s.StepOnce()
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if u.State.Message != "Swapped 5 and 3 because 5 > 3." {
		t.Fatalf("unexpected message %q", u.State.Message)
	}
	if u.State.Cursor != (engine.Cursor{Outer: 0, Inner: 1}) || u.State.Stats.Swaps != 1 {
		t.Fatalf("unexpected state %+v", u.State)
	}
	u, _ = s.StepOnce()
	if u.State.Message != "5 <= 8, so no swap needed." {
		t.Fatalf("unexpected message %q", u.State.Message)
	}
	u, _ = s.StepOnce()
	if u.State.Cursor != (engine.Cursor{Outer: 1, Inner: 0}) || u.State.Settled != 1 {
		t.Fatalf("expected pass completion, got %+v", u.State)
	}
	if u.State.Message != "Swapped 8 and 1 because 8 > 1. Pass complete. Largest remaining item bubbled to end." {
		t.Fatalf("unexpected message %q", u.State.Message)
	}
	for !u.State.Complete {
		if u, err = s.StepOnce(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if !u.Finished || u.State.Playback != Finished || u.State.Stats.Comparisons != 6 {
		t.Fatalf("unexpected final state %+v finished=%v", u.State, u.Finished)
	}
	if _, err := s.StepOnce(); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after completion, got %v", err)
	}
}

func TestStepOnceRejectedWhileRunning(t *testing.T) {
	s := newTestSession(t, ModeLearn, 2, 1, 3)
	if _, err := s.SetAutoplay(true); err != nil {
		t.Fatalf("autoplay: %v", err)
	}
	if _, err := s.StepOnce(); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState while running, got %v", err)
	}
	if _, err := s.SetAutoplay(false); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := s.StepOnce(); err != nil {
		t.Fatalf("step while paused: %v", err)
	}
}

func TestAutoplayRunsToCompletion(t *testing.T) {
	s := newTestSession(t, ModeLearn, 9, 7, 5, 3, 1)
	u, err := s.SetAutoplay(true)
	if err != nil {
		t.Fatalf("autoplay: %v", err)
	}
	ticks := 0
	for u.Tick != nil {
		var ok bool
		u, ok = s.HandleTick(*u.Tick)
		if !ok {
			t.Fatalf("live tick rejected at %d", ticks)
		}
		ticks++
	}
	if ticks != 10 {
		t.Fatalf("expected 10 ticks, got %d", ticks)
	}
	if !u.State.Complete || u.State.Playback != Finished || !u.Finished {
		t.Fatalf("expected finished run, got %+v", u.State)
	}
	if !engine.Array(u.State.Values).IsSorted() {
		t.Fatalf("values not sorted: %v", u.State.Values)
	}
}

func TestStaleTickIgnoredAfterReset(t *testing.T) {
	s := newTestSession(t, ModeLearn, 4, 3, 2, 1)
	u, err := s.SetAutoplay(true)
	if err != nil {
		t.Fatalf("autoplay: %v", err)
	}
	pending := *u.Tick
	before := s.State().RunID
	if _, err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	after, ok := s.HandleTick(pending)
	if ok {
		t.Fatalf("stale tick applied after reset")
	}
	if after.State.Stats.Comparisons != 0 || after.State.Playback != Idle {
		t.Fatalf("reset state mutated by stale tick: %+v", after.State)
	}
	if after.State.RunID == before {
		t.Fatalf("expected a new run id after reset")
	}
}

func TestStaleTickIgnoredAfterPause(t *testing.T) {
	s := newTestSession(t, ModeLearn, 4, 3, 2, 1)
	u, _ := s.SetAutoplay(true)
	pending := *u.Tick
	if _, err := s.SetAutoplay(false); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, ok := s.HandleTick(pending); ok {
		t.Fatalf("tick applied after pause")
	}
	if s.State().Stats.Comparisons != 0 {
		t.Fatalf("paused session advanced")
	}
}

func TestSetSpeedWhileRunning(t *testing.T) {
	s := newTestSession(t, ModeLearn, 4, 3, 2, 1)
	u, _ := s.SetAutoplay(true)
	old := *u.Tick
	u, err := s.SetSpeed("fast")
	if err != nil {
		t.Fatalf("speed: %v", err)
	}
	if u.Tick == nil || u.Tick.Interval != SpeedFast.Interval {
		t.Fatalf("expected rearmed fast tick, got %+v", u.Tick)
	}
	if _, ok := s.HandleTick(old); ok {
		t.Fatalf("old-speed tick applied")
	}
	if _, ok := s.HandleTick(*u.Tick); !ok {
		t.Fatalf("new tick rejected")
	}
	if _, err := s.SetSpeed("warp"); err == nil {
		t.Fatalf("expected error for unknown speed")
	}
}

func TestSubmitDecisionPlayMode(t *testing.T) {
	s := newTestSession(t, ModePlay, 3, 5, 8, 1)
	if _, err := s.StepOnce(); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected step to be rejected in play mode, got %v", err)
	}
	if _, err := s.SetAutoplay(true); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected autoplay to be rejected in play mode, got %v", err)
	}
	u, err := s.SubmitDecision(engine.ActionPass)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !u.Verdict.Correct || u.State.Stats.Score != 10 || u.State.Cursor != (engine.Cursor{Outer: 0, Inner: 1}) {
		t.Fatalf("unexpected state %+v", u.State)
	}
	if u.State.Feedback.Kind != FeedbackCorrect || u.Expiry == nil || u.Expiry.After != CorrectFeedbackDuration {
		t.Fatalf("unexpected feedback %+v %+v", u.State.Feedback, u.Expiry)
	}

	before := s.State()
	u, err = s.SubmitDecision(engine.ActionSwap)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if u.Verdict.Correct {
		t.Fatalf("expected incorrect verdict for 5,8 swap")
	}
	if u.State.Cursor != before.Cursor || !sameValues(u.State.Values, before.Values) {
		t.Fatalf("mistake moved progress")
	}
	if u.State.Stats.Score != 5 || u.State.Stats.Mistakes != 1 {
		t.Fatalf("unexpected stats %+v", u.State.Stats)
	}
	if u.State.Message != "Oops! 5 is not greater than 8, so no swap." {
		t.Fatalf("unexpected message %q", u.State.Message)
	}
	if u.Expiry.After != IncorrectFeedbackDuration {
		t.Fatalf("expected incorrect feedback duration, got %v", u.Expiry.After)
	}
}

func TestSubmitDecisionRejectedInLearnMode(t *testing.T) {
	s := newTestSession(t, ModeLearn, 2, 1)
	before := s.State()
	u, err := s.SubmitDecision(engine.ActionSwap)
	if !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if u.State.Stats != before.Stats || u.State.Cursor != before.Cursor {
		t.Fatalf("rejected submit mutated state")
	}
}

func TestPlayToGameOverAndRecord(t *testing.T) {
	s := newTestSession(t, ModePlay, 2, 1, 3)
	var u Update
	var err error
	for !s.IsComplete() {
		expected, _, perr := engine.Peek(engine.Array(s.State().Values), s.State().Cursor)
		if perr != nil {
			t.Fatalf("peek: %v", perr)
		}
		if u, err = s.SubmitDecision(expected); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if !u.Finished || u.State.Message != "Game over! Final score: 30" {
		t.Fatalf("unexpected final update %+v", u.State)
	}
	if _, err := s.SubmitDecision(engine.ActionPass); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState after game over, got %v", err)
	}
	rec, passes, err := s.Record()
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if rec.Mode != "play" || rec.Score != 30 || rec.Comparisons != 3 || rec.Swaps != 1 || rec.Size != 3 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.DurationMs <= 0 || rec.UUID == "" {
		t.Fatalf("expected duration and uuid, got %+v", rec)
	}
	if len(passes) != 2 || passes[0].Comparisons != 2 || passes[1].Comparisons != 1 {
		t.Fatalf("unexpected passes %+v", passes)
	}
}

func TestRecordIncompleteRun(t *testing.T) {
	s := newTestSession(t, ModeLearn, 2, 1, 3)
	if _, _, err := s.Record(); !errors.Is(err, engine.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFeedbackExpiry(t *testing.T) {
	s := newTestSession(t, ModePlay, 1, 2, 3)
	u, err := s.SubmitDecision(engine.ActionSwap)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	first := *u.Expiry
	u, _ = s.SubmitDecision(engine.ActionPass)
	second := *u.Expiry
	if _, ok := s.ExpireFeedback(first.Gen); ok {
		t.Fatalf("older expiry cleared newer feedback")
	}
	if s.State().Feedback.Kind != FeedbackCorrect {
		t.Fatalf("expected correct feedback still shown")
	}
	if _, ok := s.ExpireFeedback(second.Gen); !ok {
		t.Fatalf("current expiry rejected")
	}
	if s.State().Feedback.Kind != FeedbackNone {
		t.Fatalf("feedback not cleared")
	}
}

func TestFeedbackCancelledOnModeSwitch(t *testing.T) {
	s := newTestSession(t, ModePlay, 1, 2, 3)
	u, _ := s.SubmitDecision(engine.ActionSwap)
	pending := *u.Expiry
	u, err := s.ToggleMode()
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if u.State.Mode != ModeLearn || u.State.Feedback.Kind != FeedbackNone {
		t.Fatalf("unexpected state after mode switch %+v", u.State)
	}
	if u.State.Stats != (engine.Stats{}) {
		t.Fatalf("stats not reset: %+v", u.State.Stats)
	}
	if _, ok := s.ExpireFeedback(pending.Gen); ok {
		t.Fatalf("stale expiry applied after mode switch")
	}
}

func sameValues(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
