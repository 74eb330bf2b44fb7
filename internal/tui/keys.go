package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Decimal   key.Binding
	Equal     key.Binding
	Clear     key.Binding
	Backspace key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Operators: key.NewBinding(
			key.WithKeys("+", "-", "x", "X", "*", "/"),
			key.WithHelp("+ - x /", "operator"),
		),
		Decimal: key.NewBinding(
			key.WithKeys(".", ","),
			key.WithHelp(".", "decimal"),
		),
		Equal: key.NewBinding(
			key.WithKeys("=", "enter"),
			key.WithHelp("enter", "equals"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c", "C"),
			key.WithHelp("esc", "clear"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "delete"),
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
	return []key.Binding{k.Equal, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digits, k.Decimal, k.Operators},
		{k.Equal, k.Clear, k.Backspace},
		{k.Help, k.Quit},
	}
}
