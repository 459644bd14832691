package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	SplitRight key.Binding
	SplitDown  key.Binding
	Close      key.Binding
	NextPane   key.Binding
	PrevPane   key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Equalize   key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		SplitRight: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "split right"),
		),
		SplitDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "split down"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close pane"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev pane"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "grow pane"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shrink pane"),
		),
		Equalize: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "equalize"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SplitRight, k.SplitDown, k.Close, k.NextPane, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SplitRight, k.SplitDown, k.Close},
		{k.NextPane, k.PrevPane, k.Grow, k.Shrink},
		{k.Equalize, k.Undo, k.Redo},
		{k.Help, k.Quit},
	}
}
