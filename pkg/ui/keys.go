package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding of the tree screen.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Right       key.Binding
	Left        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	PageDown    key.Binding
	PageUp      key.Binding
	Toggle      key.Binding
	ClearChecks key.Binding
	Expand      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Add         key.Binding
	Rename      key.Binding
	Copy        key.Binding
	Export      key.Binding
	Details     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "expand")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "collapse")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		PageDown:    key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "page down")),
		PageUp:      key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "page up")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check")),
		ClearChecks: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear checks")),
		Expand:      key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open/close")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add place")),
		Rename:      key.NewBinding(key.WithKeys("e", "r"), key.WithHelp("e", "rename")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy selection")),
		Export:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write report")),
		Details:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "selection pane")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Expand, k.Add, k.Rename, k.Details, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Toggle, k.ClearChecks, k.Expand, k.ExpandAll, k.CollapseAll},
		{k.Add, k.Rename, k.Copy, k.Export, k.Details, k.Quit},
	}
}
