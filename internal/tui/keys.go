package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/tuisort/internal/session"
)

type keyMap struct {
	Play   key.Binding
	Step   key.Binding
	Speed  key.Binding
	Slow   key.Binding
	Normal key.Binding
	Fast   key.Binding
	Swap   key.Binding
	Pass   key.Binding
	Mode   key.Binding
	Reset  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Play: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play/pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "step"),
		),
		Speed: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle speed"),
		),
		Slow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "slow"),
		),
		Normal: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "normal"),
		),
		Fast: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "fast"),
		),
		Swap: key.NewBinding(
			key.WithKeys("s", "up"),
			key.WithHelp("s/↑", "swap (left > right)"),
		),
		Pass: key.NewBinding(
			key.WithKeys("p", "down"),
			key.WithHelp("p/↓", "pass (left ≤ right)"),
		),
		Mode: key.NewBinding(
			key.WithKeys("tab", "m"),
			key.WithHelp("tab", "learn/play"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new array"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy summary"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// sync enables only the bindings that make sense for the current state.
func (k *keyMap) sync(st session.State) {
	learn := st.Mode == session.ModeLearn
	play := st.Mode == session.ModePlay
	k.Play.SetEnabled(learn && !st.Complete)
	k.Step.SetEnabled(learn && !st.Complete && st.Playback != session.Running)
	k.Speed.SetEnabled(learn)
	k.Slow.SetEnabled(learn)
	k.Normal.SetEnabled(learn)
	k.Fast.SetEnabled(learn)
	k.Swap.SetEnabled(play && !st.Complete)
	k.Pass.SetEnabled(play && !st.Complete)
	k.Copy.SetEnabled(st.Complete)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.Swap, k.Pass, k.Copy, k.Mode, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.Speed, k.Slow, k.Normal, k.Fast},
		{k.Swap, k.Pass},
		{k.Mode, k.Reset, k.Copy, k.Help, k.Quit},
	}
}
