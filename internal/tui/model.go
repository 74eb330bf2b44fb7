// Package tui is a terminal front end for the calculator: a display, the
// keypad grid and a help footer.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/keypad"
)

// Model implements tea.Model around a single calculator.
type Model struct {
	calc *calculator.Calculator
	keys keyMap
	help help.Model

	// label of the last accepted key, highlighted on the grid
	pressed  string
	quitting bool
}

// New returns a model driving calc. A nil calc starts a fresh calculator.
func New(calc *calculator.Calculator) Model {
	if calc == nil {
		calc = calculator.New()
	}

	return Model{
		calc: calc,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		name := msg.String()
		if key.Matches(msg, m.keys.Backspace) {
			name = "backspace"
		}

		if ev, ok := keypad.Translate(name); ok {
			m.calc.Dispatch(ev)
			m.pressed = keypad.Label(ev)
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderDisplay())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Calculator returns the calculator driven by the model.
func (m Model) Calculator() *calculator.Calculator {
	return m.calc
}

func (m Model) renderDisplay() string {
	text := m.calc.Display()
	if calculator.IsSentinel(text) {
		return sentinelStyle.Render(text)
	}
	return displayStyle.Render(text)
}

func (m Model) renderStatus() string {
	status := string(m.calc.Phase())
	if op := m.calc.PendingOperator(); op != calculator.OpNone {
		status += " " + op.String()
	}
	return statusStyle.Render(status)
}

func (m Model) renderGrid() string {
	rows := make([]string, 0, len(keypad.Layout))

	for _, labels := range keypad.Layout {
		buttons := make([]string, 0, len(labels))
		for _, label := range labels {
			buttons = append(buttons, m.renderButton(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderButton(label string) string {
	switch {
	case label == m.pressed:
		return pressedButtonStyle.Render(label)
	case isOperatorLabel(label):
		return operatorButtonStyle.Render(label)
	default:
		return buttonStyle.Render(label)
	}
}

func isOperatorLabel(label string) bool {
	_, ok := calculator.ParseOperator(label)
	return ok && len(label) == 1
}
