package calculator

import (
	"fmt"
	"math"
	"strconv"
)

// State is the serializable form of a Calculator. Numbers are kept as text
// because results may be infinite or NaN, which JSON numbers cannot carry.
type State struct {
	Display    string `json:"display"`
	First      string `json:"first,omitempty"` // empty when absent
	Pending    string `json:"pending,omitempty"`
	Awaiting   bool   `json:"awaiting"`
	LastResult string `json:"last_result,omitempty"`
	Backspace  string `json:"backspace,omitempty"`
}

// Snapshot captures the machine state.
func (c *Calculator) Snapshot() State {
	s := State{
		Display:    c.display,
		Pending:    c.pending.String(),
		Awaiting:   c.awaiting,
		LastResult: formatState(c.lastResult),
		Backspace:  c.backspace.String(),
	}
	if c.hasFirst {
		s.First = formatState(c.first)
	}
	return s
}

// Restore rebuilds a Calculator from a snapshot. Options are applied after
// the snapshot, so they win over its backspace policy.
func Restore(s State, opts ...Option) (*Calculator, error) {
	c := &Calculator{display: s.Display, awaiting: s.Awaiting}

	if len(c.display) > MaxDisplayLen && !IsSentinel(c.display) {
		return nil, fmt.Errorf("restore: display %q longer than %d characters", s.Display, MaxDisplayLen)
	}

	if s.Pending != "" {
		op, ok := ParseOperator(s.Pending)
		if !ok {
			return nil, fmt.Errorf("restore: pending %q: %w", s.Pending, ErrUnknownOperator)
		}
		c.pending = op
	}

	if s.First != "" {
		v, err := parseState(s.First)
		if err != nil {
			return nil, fmt.Errorf("restore: first operand: %w", err)
		}
		c.setFirst(v)
	}
	if c.pending != OpNone && !c.hasFirst {
		return nil, fmt.Errorf("restore: pending operator %s without a first operand", c.pending)
	}

	if s.LastResult != "" {
		v, err := parseState(s.LastResult)
		if err != nil {
			return nil, fmt.Errorf("restore: last result: %w", err)
		}
		c.lastResult = v
	}

	policy, err := ParseBackspacePolicy(s.Backspace)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	c.backspace = policy

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func formatState(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseState(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(v, 0) {
		return 0, err
	}
	return v, nil
}
