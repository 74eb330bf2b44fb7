package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"go-chi-calculator/internal/calculator"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNewStartsAtZero(t *testing.T) {
	m := New(nil)

	if got := m.Calculator().Display(); got != "0" {
		t.Errorf("Display() = %q, want %q", got, "0")
	}
	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should not return a command")
	}
}

func TestKeyboardArithmetic(t *testing.T) {
	m := New(nil)
	m = send(t, m, runes("1"), runes("2"), runes("+"), runes("3"), tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Calculator().Display(); got != "15" {
		t.Errorf("Display() = %q, want %q", got, "15")
	}
	if m.pressed != "=" {
		t.Errorf("pressed = %q, want %q", m.pressed, "=")
	}
}

func TestKeyboardMultiplyAliases(t *testing.T) {
	for _, k := range []string{"x", "X", "*"} {
		t.Run(k, func(t *testing.T) {
			m := send(t, New(nil), runes("6"), runes(k), runes("7"), runes("="))

			if got := m.Calculator().Display(); got != "42" {
				t.Errorf("Display() = %q, want %q", got, "42")
			}
		})
	}
}

func TestBackspaceAndClear(t *testing.T) {
	m := send(t, New(nil), runes("1"), runes("2"), runes("3"), tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Calculator().Display(); got != "12" {
		t.Errorf("after backspace Display() = %q, want %q", got, "12")
	}
	if m.pressed != "DEL" {
		t.Errorf("pressed = %q, want %q", m.pressed, "DEL")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.Calculator().Display(); got != "1" {
		t.Errorf("after delete Display() = %q, want %q", got, "1")
	}

	m = send(t, m, runes("+"), tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.Calculator().Display(); got != "0" {
		t.Errorf("after clear Display() = %q, want %q", got, "0")
	}
	if m.Calculator().Phase() != calculator.PhaseIdle {
		t.Errorf("Phase() = %q, want %q", m.Calculator().Phase(), calculator.PhaseIdle)
	}
}

func TestUnknownKeysAreIgnored(t *testing.T) {
	m := send(t, New(nil), runes("5"), runes("%"), runes("z"), tea.KeyMsg{Type: tea.KeyTab})

	if got := m.Calculator().Display(); got != "5" {
		t.Errorf("Display() = %q, want %q", got, "5")
	}
	if m.pressed != "5" {
		t.Errorf("pressed = %q, want %q", m.pressed, "5")
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			next, cmd := New(nil).Update(msg)
			m := next.(Model)

			if !m.quitting {
				t.Error("expected model to be quitting")
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
			if m.View() != "" {
				t.Errorf("View() after quit = %q, want empty", m.View())
			}
		})
	}
}

func TestHelpToggle(t *testing.T) {
	m := send(t, New(nil), runes("?"))
	if !m.help.ShowAll {
		t.Error("expected full help after ?")
	}

	m = send(t, m, runes("?"))
	if m.help.ShowAll {
		t.Error("expected short help after second ?")
	}
}

func TestViewShowsDisplayAndGrid(t *testing.T) {
	m := send(t, New(nil), runes("1"), runes("/"), runes("0"), runes("="))
	view := m.View()

	if !strings.Contains(view, calculator.InfinityText) {
		t.Errorf("View() missing display %q:\n%s", calculator.InfinityText, view)
	}
	for _, label := range []string{"AC", "DEL", "7", "=", "0"} {
		if !strings.Contains(view, label) {
			t.Errorf("View() missing button %q", label)
		}
	}
	if !strings.Contains(view, string(calculator.PhaseResult)) {
		t.Errorf("View() missing phase %q", calculator.PhaseResult)
	}
}

func TestBackspacePolicyFromCalculator(t *testing.T) {
	calc := calculator.New(calculator.WithBackspacePolicy(calculator.BackspaceKeepEmpty))
	m := send(t, New(calc), runes("7"), tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.Calculator().Display(); got != "" {
		t.Errorf("Display() = %q, want empty", got)
	}
}
