package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Reset    key.Binding
	Check    key.Binding
	Symbol   key.Binding
	Next     key.Binding
	Previous key.Binding
	Close    key.Binding
	Erase    key.Binding
	Undo     key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		Reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset view")),
		Check:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check")),
		Symbol:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "open hint")),
		Next:     key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next step")),
		Previous: key.NewBinding(key.WithKeys("p", "shift+tab"), key.WithHelp("p", "prev step")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close hint")),
		Erase:    key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "erase last stroke")),
		Undo:     key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Save:     key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Check, k.Symbol, k.Next, k.Erase, k.Undo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Check, k.Symbol, k.Next, k.Previous, k.Close},
		{k.Erase, k.Undo, k.Save, k.Help, k.Quit},
	}
}
