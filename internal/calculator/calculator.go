// Package calculator implements the keypad calculator: a display buffer, an
// optional first operand and a pending operator, driven one logical input
// event at a time.
package calculator

import (
	"fmt"
	"math"
	"strings"
)

// BackspacePolicy decides what an emptied display buffer shows.
type BackspacePolicy int

const (
	// BackspaceResetZero shows "0" once the last character is removed.
	BackspaceResetZero BackspacePolicy = iota
	// BackspaceKeepEmpty leaves the buffer empty.
	BackspaceKeepEmpty
)

func (p BackspacePolicy) String() string {
	if p == BackspaceKeepEmpty {
		return "empty"
	}
	return "zero"
}

// ParseBackspacePolicy accepts "zero" or "empty".
func ParseBackspacePolicy(s string) (BackspacePolicy, error) {
	switch s {
	case "", "zero":
		return BackspaceResetZero, nil
	case "empty":
		return BackspaceKeepEmpty, nil
	}
	return 0, fmt.Errorf("unknown backspace policy %q", s)
}

// Sink receives the display text after every input, including inputs that
// leave it unchanged.
type Sink interface {
	Render(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

func (f SinkFunc) Render(text string) { f(text) }

type Option func(*Calculator)

func WithSink(s Sink) Option {
	return func(c *Calculator) { c.sink = s }
}

func WithBackspacePolicy(p BackspacePolicy) Option {
	return func(c *Calculator) { c.backspace = p }
}

// Phase is a coarse view of where the machine is in an operation.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhaseOperatorPending    Phase = "operator_pending"
	PhaseSecondOperandEntry Phase = "second_operand_entry"
	PhaseResult             Phase = "result"
)

// Calculator is not safe for concurrent use; callers serialize input events.
type Calculator struct {
	display    string
	first      float64
	hasFirst   bool
	pending    Operator
	awaiting   bool
	lastResult float64

	backspace BackspacePolicy
	sink      Sink
}

func New(opts ...Option) *Calculator {
	c := &Calculator{display: "0"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ---------------------------------------------------------------------------
// Inputs
// ---------------------------------------------------------------------------

// Dispatch routes a logical event to the matching input method.
func (c *Calculator) Dispatch(ev Event) {
	switch ev.Kind {
	case EventDigit:
		c.InputDigit(ev.Digit)
	case EventDecimal:
		c.InputDecimal()
	case EventOperator:
		c.InputOperator(ev.Op)
	case EventEqual:
		c.InputEqual()
	case EventClear:
		c.InputClear()
	case EventBackspace:
		c.InputBackspace()
	}
}

// InputDigit starts a fresh operand when one is awaited (or the buffer holds
// "0" or a sentinel) and appends to the buffer otherwise.
func (c *Calculator) InputDigit(d byte) {
	if d < '0' || d > '9' {
		return
	}

	switch {
	case c.awaiting:
		c.display = string(d)
		c.awaiting = false
	case c.display == "0" || IsSentinel(c.display):
		c.display = string(d)
	default:
		c.display = truncate(c.display + string(d))
	}
	c.render()
}

// InputDecimal appends a decimal point unless the buffer already has one.
// An awaited operand starts as "0.".
func (c *Calculator) InputDecimal() {
	switch {
	case c.awaiting:
		c.display = "0."
		c.awaiting = false
	case strings.Contains(c.display, "."):
		// already has one
	case c.display == "" || IsSentinel(c.display):
		c.display = "0."
	default:
		c.display = truncate(c.display + ".")
	}
	c.render()
}

// InputOperator records op as the pending operator. With a pending operator
// and a typed second operand it first folds the pending operation into the
// first operand, which is what chains "5 + 3 +" into 8.
func (c *Calculator) InputOperator(op Operator) {
	// operator changed before any second operand was typed
	if c.pending != OpNone && c.awaiting {
		c.pending = op
		c.render()
		return
	}

	switch {
	case !c.hasFirst:
		c.setFirst(parseDisplay(c.display))
	case c.pending != OpNone:
		c.setFirst(c.compute())
	default:
		c.setFirst(parseDisplay(c.display))
	}

	c.pending = op
	c.awaiting = true
	c.render()
}

// InputEqual applies the pending operator. Without a first operand or a
// pending operator it does nothing.
func (c *Calculator) InputEqual() {
	if !c.hasFirst || c.pending == OpNone {
		c.render()
		return
	}

	c.setFirst(c.compute())
	c.pending = OpNone
	c.awaiting = true
	c.render()
}

// InputClear resets the machine to its initial state.
func (c *Calculator) InputClear() {
	c.display = "0"
	c.first = 0
	c.hasFirst = false
	c.pending = OpNone
	c.awaiting = false
	c.lastResult = 0
	c.render()
}

// InputBackspace removes the last character of the buffer. A sentinel text is
// removed as a whole.
func (c *Calculator) InputBackspace() {
	switch {
	case IsSentinel(c.display):
		c.display = ""
	case c.display != "":
		c.display = c.display[:len(c.display)-1]
	}

	if c.display == "" && c.backspace == BackspaceResetZero {
		c.display = "0"
	}
	c.render()
}

// ---------------------------------------------------------------------------
// Read side
// ---------------------------------------------------------------------------

// Display returns the text the display shows.
func (c *Calculator) Display() string { return c.display }

// FirstOperand returns the captured first operand and whether one exists.
func (c *Calculator) FirstOperand() (float64, bool) { return c.first, c.hasFirst }

// PendingOperator returns OpNone when no operator is pending.
func (c *Calculator) PendingOperator() Operator { return c.pending }

// AwaitingOperand reports whether the next numeric input starts a new operand.
func (c *Calculator) AwaitingOperand() bool { return c.awaiting }

func (c *Calculator) LastResult() float64 { return c.lastResult }

func (c *Calculator) BackspacePolicy() BackspacePolicy { return c.backspace }

func (c *Calculator) Phase() Phase {
	switch {
	case c.pending != OpNone && c.awaiting:
		return PhaseOperatorPending
	case c.pending != OpNone:
		return PhaseSecondOperandEntry
	case c.hasFirst && c.awaiting:
		return PhaseResult
	}
	return PhaseIdle
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

// compute applies the pending operator to the first operand and the buffer,
// writes the formatted result to the buffer and returns it.
func (c *Calculator) compute() float64 {
	result, err := Apply(c.pending, c.first, parseDisplay(c.display))
	if err != nil {
		c.display = ErrorText
		result = math.NaN()
	} else {
		c.display = FormatNumber(result)
	}
	c.lastResult = result
	return result
}

func (c *Calculator) setFirst(v float64) {
	c.first = v
	c.hasFirst = true
}

func (c *Calculator) render() {
	if c.sink != nil {
		c.sink.Render(c.display)
	}
}
