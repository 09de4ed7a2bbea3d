package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuisort/internal/generator"
	"github.com/verte-zerg/tuisort/internal/session"
)

func newTestModel(t *testing.T, mode session.Mode, values ...int) *Model {
	t.Helper()
	sess, err := session.New(session.Options{
		Mode:   mode,
		Size:   len(values),
		Min:    1,
		Max:    100,
		Source: generator.Fixed(values),
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return NewModel(sess, nil, false)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStepKeyAdvancesLearnMode(t *testing.T) {
	m := newTestModel(t, session.ModeLearn, 5, 3, 8, 1)
	m.Update(runeKey('n'))
	if m.state.Stats.Comparisons != 1 || m.state.Stats.Swaps != 1 {
		t.Fatalf("unexpected stats after step: %+v", m.state.Stats)
	}
	if got := m.state.Values; got[0] != 3 || got[1] != 5 {
		t.Fatalf("expected first pair swapped, got %v", got)
	}
}

func TestStaleTickIsIgnored(t *testing.T) {
	m := newTestModel(t, session.ModeLearn, 5, 3, 8, 1)
	m.Update(autoplayTickMsg{tick: session.Tick{Gen: 42}})
	if m.state.Stats.Comparisons != 0 {
		t.Fatalf("stale tick advanced the run: %+v", m.state.Stats)
	}
}

func TestPlayKeysScoreDecisions(t *testing.T) {
	m := newTestModel(t, session.ModePlay, 5, 3, 8, 1)
	m.Update(runeKey('s'))
	if m.state.Stats.Score != 10 || m.state.Feedback.Kind != session.FeedbackCorrect {
		t.Fatalf("expected correct swap, got %+v feedback %q", m.state.Stats, m.state.Feedback.Kind)
	}
	m.Update(runeKey('s'))
	if m.state.Stats.Mistakes != 1 || m.state.Feedback.Kind != session.FeedbackIncorrect {
		t.Fatalf("expected mistake for swapping 5 and 8, got %+v", m.state.Stats)
	}
}

func TestDisabledKeysDoNothing(t *testing.T) {
	m := newTestModel(t, session.ModePlay, 5, 3, 8, 1)
	m.Update(runeKey('n'))
	if m.state.Stats.Comparisons != 0 || m.errMsg != "" {
		t.Fatalf("step key should be inert in play mode: %+v %q", m.state.Stats, m.errMsg)
	}
}

func TestModeToggleResetsRun(t *testing.T) {
	m := newTestModel(t, session.ModeLearn, 5, 3, 8, 1)
	m.Update(runeKey('n'))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.state.Mode != session.ModePlay {
		t.Fatalf("expected play mode, got %s", m.state.Mode)
	}
	if m.state.Stats.Comparisons != 0 {
		t.Fatalf("expected fresh stats, got %+v", m.state.Stats)
	}
}

func TestFinishedRunUpdatesFooter(t *testing.T) {
	m := newTestModel(t, session.ModePlay, 2, 1)
	if m.renderFooter() != "" {
		t.Fatalf("expected empty footer without history")
	}
	m.Update(runeKey('s'))
	if !m.state.Complete {
		t.Fatalf("expected run to complete")
	}
	if got := m.renderFooter(); got != "Last score 10  Best score 10" {
		t.Fatalf("unexpected footer: %q", got)
	}
}

func TestRenderStatus(t *testing.T) {
	m := newTestModel(t, session.ModePlay, 5, 3, 8, 1)
	status := renderStatus(m.state)
	for _, part := range []string{"Comparisons 0", "Swaps 0", "Score 0", "Mistakes 0", "Pass 1"} {
		if !strings.Contains(status, part) {
			t.Fatalf("status %q missing %q", status, part)
		}
	}
	m = newTestModel(t, session.ModeLearn, 5, 3, 8, 1)
	status = renderStatus(m.state)
	if !strings.Contains(status, "Speed normal") || !strings.Contains(status, "idle") {
		t.Fatalf("unexpected learn status %q", status)
	}
}
