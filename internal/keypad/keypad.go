// Package keypad translates button labels and key names into calculator
// events, so buttons and keyboards drive the same logical inputs.
package keypad

import (
	"go-chi-calculator/internal/calculator"
)

var namedKeys = map[string]calculator.Event{
	".":         calculator.DecimalEvent,
	",":         calculator.DecimalEvent,
	"=":         calculator.EqualEvent,
	"Enter":     calculator.EqualEvent,
	"enter":     calculator.EqualEvent,
	"AC":        calculator.ClearEvent,
	"C":         calculator.ClearEvent,
	"c":         calculator.ClearEvent,
	"Escape":    calculator.ClearEvent,
	"esc":       calculator.ClearEvent,
	"DEL":       calculator.BackspaceEvent,
	"Backspace": calculator.BackspaceEvent,
	"backspace": calculator.BackspaceEvent,
}

// Translate maps a key to its event. Unknown keys report false.
func Translate(key string) (calculator.Event, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return calculator.DigitEvent(key[0]), true
	}

	if ev, ok := namedKeys[key]; ok {
		return ev, true
	}

	// "add", "subtract" ... are accepted by ParseOperator but are not keys
	if len(key) == 1 {
		if op, ok := calculator.ParseOperator(key); ok {
			return calculator.OperatorEvent(op), true
		}
	}

	return calculator.Event{}, false
}

// TranslateAll translates every key, failing on the first unknown one with
// its index.
func TranslateAll(keys []string) ([]calculator.Event, int, bool) {
	events := make([]calculator.Event, 0, len(keys))
	for i, key := range keys {
		ev, ok := Translate(key)
		if !ok {
			return nil, i, false
		}
		events = append(events, ev)
	}
	return events, -1, true
}

// Layout is the on-screen button grid, top row first.
var Layout = [][]string{
	{"AC", "DEL", "/", "x"},
	{"7", "8", "9", "-"},
	{"4", "5", "6", "+"},
	{"1", "2", "3", "="},
	{"0", "."},
}

// Label returns the Layout label for an event, which is how the event is
// highlighted on the grid.
func Label(ev calculator.Event) string {
	return ev.String()
}
