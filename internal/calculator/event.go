package calculator

import "fmt"

// EventKind identifies a logical calculator input, independent of whether it
// came from a button or a key press.
type EventKind int

const (
	EventDigit EventKind = iota + 1
	EventDecimal
	EventOperator
	EventEqual
	EventClear
	EventBackspace
)

func (k EventKind) String() string {
	switch k {
	case EventDigit:
		return "digit"
	case EventDecimal:
		return "decimal"
	case EventOperator:
		return "operator"
	case EventEqual:
		return "equal"
	case EventClear:
		return "clear"
	case EventBackspace:
		return "backspace"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one logical input. Digit is set for EventDigit, Op for
// EventOperator.
type Event struct {
	Kind  EventKind
	Digit byte
	Op    Operator
}

func DigitEvent(d byte) Event { return Event{Kind: EventDigit, Digit: d} }
func OperatorEvent(op Operator) Event { return Event{Kind: EventOperator, Op: op} }

var (
	DecimalEvent   = Event{Kind: EventDecimal}
	EqualEvent     = Event{Kind: EventEqual}
	ClearEvent     = Event{Kind: EventClear}
	BackspaceEvent = Event{Kind: EventBackspace}
)

// String returns the keypad label of the event.
func (e Event) String() string {
	switch e.Kind {
	case EventDigit:
		return string(e.Digit)
	case EventDecimal:
		return "."
	case EventOperator:
		return e.Op.String()
	case EventEqual:
		return "="
	case EventClear:
		return "AC"
	case EventBackspace:
		return "DEL"
	}
	return e.Kind.String()
}
