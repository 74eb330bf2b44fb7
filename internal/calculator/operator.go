package calculator

import (
	"errors"
	"fmt"
)

// ErrUnknownOperator is returned by Apply for an operator outside the four
// arithmetic operations.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator is an arithmetic operation awaiting its second operand.
type Operator int

const (
	// OpNone marks the absence of a pending operator.
	OpNone Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

var operatorSymbols = map[Operator]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "x",
	Divide:   "/",
}

var operatorNames = map[Operator]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

// String returns the keypad symbol of the operator.
func (op Operator) String() string {
	if s, ok := operatorSymbols[op]; ok {
		return s
	}
	if op == OpNone {
		return ""
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Name returns the lower-case operation name used in routes, metrics and logs.
func (op Operator) Name() string {
	if n, ok := operatorNames[op]; ok {
		return n
	}
	return "unknown"
}

func (op Operator) Valid() bool {
	_, ok := operatorSymbols[op]
	return ok
}

// ParseOperator accepts a keypad symbol ("+", "-", "x", "*", "/") or an
// operation name ("add", "subtract", ...).
func ParseOperator(s string) (Operator, bool) {
	switch s {
	case "+", "add":
		return Add, true
	case "-", "subtract":
		return Subtract, true
	case "x", "X", "*", "multiply":
		return Multiply, true
	case "/", "divide":
		return Divide, true
	}
	return OpNone, false
}

// Apply computes a op b. Division by zero is not checked: the infinite or
// NaN result is left for display formatting.
func Apply(op Operator, a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		return a / b, nil
	default:
		return 0, fmt.Errorf("apply %s: %w", op, ErrUnknownOperator)
	}
}
