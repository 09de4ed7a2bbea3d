// Package tui provides the Bubble Tea sorting interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/tuisort/internal/engine"
	"github.com/verte-zerg/tuisort/internal/model"
	"github.com/verte-zerg/tuisort/internal/session"
	statsPkg "github.com/verte-zerg/tuisort/internal/stats"
	"github.com/verte-zerg/tuisort/internal/store"
)

type autoplayTickMsg struct {
	tick session.Tick
}

type feedbackExpiredMsg struct {
	gen uint64
}

// Model implements the Bubble Tea sorting UI.
type Model struct {
	session *session.Session
	store   *store.Store
	record  bool

	state    session.State
	keys     keyMap
	help     help.Model
	progress progress.Model

	width  int
	height int

	notice string
	errMsg string

	lastScore int
	bestScore int
	hasLast   bool
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E6E6E6"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4C8DF6")).Underline(true)
	idleTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	messageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ADE80"))
	incorrectStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
	bannerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#34D399"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs the sorting TUI over sess. st may be nil when history is
// not available; record controls whether completed runs are saved.
func NewModel(sess *session.Session, st *store.Store, record bool) *Model {
	m := &Model{
		session:  sess,
		store:    st,
		record:   record && st != nil,
		keys:     newKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.setState(sess.State())
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = progressWidth(msg.Width)
		return m, nil
	case autoplayTickMsg:
		u, ok := m.session.HandleTick(msg.tick)
		if !ok {
			return m, nil
		}
		return m, m.apply(u, nil)
	case feedbackExpiredMsg:
		u, ok := m.session.ExpireFeedback(msg.gen)
		if !ok {
			return m, nil
		}
		return m, m.apply(u, nil)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Mode):
		return m.apply(m.session.ToggleMode())
	case key.Matches(msg, m.keys.Reset):
		return m.apply(m.session.Reset())
	case key.Matches(msg, m.keys.Copy):
		m.copySummary()
		return nil
	case key.Matches(msg, m.keys.Play):
		return m.apply(m.session.ToggleAutoplay())
	case key.Matches(msg, m.keys.Step):
		return m.apply(m.session.StepOnce())
	case key.Matches(msg, m.keys.Speed):
		return m.apply(m.session.CycleSpeed())
	case key.Matches(msg, m.keys.Slow):
		return m.apply(m.session.SetSpeed(session.SpeedSlow.Name))
	case key.Matches(msg, m.keys.Normal):
		return m.apply(m.session.SetSpeed(session.SpeedNormal.Name))
	case key.Matches(msg, m.keys.Fast):
		return m.apply(m.session.SetSpeed(session.SpeedFast.Name))
	case key.Matches(msg, m.keys.Swap):
		return m.apply(m.session.SubmitDecision(engine.ActionSwap))
	case key.Matches(msg, m.keys.Pass):
		return m.apply(m.session.SubmitDecision(engine.ActionPass))
	default:
		return nil
	}
}

// apply renders u and schedules whatever timers it asks for.
func (m *Model) apply(u session.Update, err error) tea.Cmd {
	m.notice = ""
	m.errMsg = ""
	if err != nil {
		m.errMsg = err.Error()
		log.Debug("session action rejected", "err", err)
	}
	m.setState(u.State)
	if u.Finished {
		m.finishRun()
	}
	return tea.Batch(tickCmd(u.Tick), expiryCmd(u.Expiry))
}

func (m *Model) setState(st session.State) {
	m.state = st
	m.keys.sync(st)
}

func tickCmd(t *session.Tick) tea.Cmd {
	if t == nil {
		return nil
	}
	tick := *t
	return tea.Tick(tick.Interval, func(time.Time) tea.Msg {
		return autoplayTickMsg{tick: tick}
	})
}

func expiryCmd(e *session.Expiry) tea.Cmd {
	if e == nil {
		return nil
	}
	gen := e.Gen
	return tea.Tick(e.After, func(time.Time) tea.Msg {
		return feedbackExpiredMsg{gen: gen}
	})
}

func (m *Model) finishRun() {
	if m.state.Mode == session.ModePlay {
		m.lastScore = m.state.Stats.Score
		if !m.hasLast || m.lastScore > m.bestScore {
			m.bestScore = m.lastScore
		}
		m.hasLast = true
	}
	if !m.record {
		return
	}
	run, passes, err := m.session.Record()
	if err != nil {
		log.Error("failed to build run record", "err", err)
		return
	}
	if _, err := m.store.InsertRun(context.Background(), run, passes); err != nil {
		log.Error("failed to save run", "run", run.UUID, "err", err)
		return
	}
	log.Info("run saved", "run", run.UUID, "mode", run.Mode, "size", run.Size, "score", run.Score)
}

func (m *Model) copySummary() {
	summary := m.session.Summary()
	if err := clipboard.WriteAll(summary); err != nil {
		log.Warn("clipboard unavailable", "err", err)
		m.errMsg = "clipboard unavailable"
		return
	}
	m.notice = "Summary copied to clipboard."
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	runs, err := m.store.ListRuns(context.Background(), model.StatsConfig{Mode: string(session.ModePlay)})
	if err != nil {
		log.Error("failed to load run history", "err", err)
		return
	}
	if len(runs) == 0 {
		return
	}
	m.lastScore = runs[len(runs)-1].Score
	m.bestScore = statsPkg.Summarize(runs).BestScore
	m.hasLast = true
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	sections := []string{
		m.renderHeader(),
		statusStyle.Render(renderStatus(m.state)),
		"",
		renderBars(m.state, width, m.barRows()),
		"",
	}
	if badge := renderFeedback(m.state.Feedback); badge != "" {
		sections = append(sections, badge)
	}
	for _, line := range wrapText(m.state.Message, width) {
		if m.state.Complete {
			sections = append(sections, bannerStyle.Render(line))
			continue
		}
		sections = append(sections, messageStyle.Render(line))
	}
	if m.notice != "" {
		sections = append(sections, statusStyle.Render(m.notice))
	}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	sections = append(sections, "", m.renderProgress())
	if footer := m.renderFooter(); footer != "" {
		sections = append(sections, footerStyle.Render(footer))
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	learn, play := idleTabStyle, idleTabStyle
	if m.state.Mode == session.ModeLearn {
		learn = activeTabStyle
	} else {
		play = activeTabStyle
	}
	return titleStyle.Render("Bubble Sort") + "   " + learn.Render("Learn") + "  " + play.Render("Play")
}

func (m *Model) renderProgress() string {
	ratio := 0.0
	if m.state.Total > 0 {
		ratio = float64(m.state.Done) / float64(m.state.Total)
	}
	return m.progress.ViewAs(ratio) + fmt.Sprintf(" %d/%d", m.state.Done, m.state.Total)
}

func (m *Model) barRows() int {
	if m.height <= 0 {
		return 10
	}
	// header, status, labels, markers, message, progress, footer, help and spacing
	rows := m.height - 14
	if rows > 20 {
		rows = 20
	}
	if rows < minBarRows {
		rows = minBarRows
	}
	return rows
}

func (m *Model) renderFooter() string {
	if !m.hasLast {
		return ""
	}
	return fmt.Sprintf("Last score %d  Best score %d", m.lastScore, m.bestScore)
}

func renderStatus(st session.State) string {
	segments := []string{
		fmt.Sprintf("Comparisons %d", st.Stats.Comparisons),
		fmt.Sprintf("Swaps %d", st.Stats.Swaps),
	}
	if st.Mode == session.ModePlay {
		segments = append(segments,
			fmt.Sprintf("Score %d", st.Stats.Score),
			fmt.Sprintf("Mistakes %d", st.Stats.Mistakes),
		)
	} else {
		segments = append(segments,
			fmt.Sprintf("Speed %s", st.Speed.Name),
			st.Playback.String(),
		)
	}
	if !st.Complete && !st.Cursor.IsTerminal() {
		segments = append(segments, fmt.Sprintf("Pass %d", st.Cursor.Outer+1))
	}
	return strings.Join(segments, " · ")
}

func renderFeedback(fb session.Feedback) string {
	switch fb.Kind {
	case session.FeedbackCorrect:
		return correctStyle.Render("✓ " + fb.Message)
	case session.FeedbackIncorrect:
		return incorrectStyle.Render("✗ " + fb.Message)
	default:
		return ""
	}
}

func progressWidth(width int) int {
	w := width - 12
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}
