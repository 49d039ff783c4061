package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up    key.Binding
	down  key.Binding
	left  key.Binding
	right key.Binding
	enter key.Binding
	play  key.Binding
	seek  key.Binding
	back  key.Binding
	retry key.Binding
	help  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "español")),
		right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "english")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play/expand")),
		play:  key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "play/pause")),
		seek:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "seek")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		retry: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.play, k.seek, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.enter, k.play, k.seek, k.back},
		{k.retry, k.help, k.quit},
	}
}

// seekHelp lists the bindings active while the seek control has focus.
func (k keyMap) seekHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "move")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		k.back,
	}
}
