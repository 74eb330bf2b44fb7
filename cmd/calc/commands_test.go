package main

import (
	"bytes"
	"strings"
	"testing"

	"go-chi-calculator/internal/calculator"
)

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{name: "addition", keys: []string{"1", "2", "+", "3", "="}, want: "15\n"},
		{name: "divide by zero", keys: []string{"1", "/", "0", "="}, want: calculator.InfinityText + "\n"},
		{name: "clear", keys: []string{"9", "AC"}, want: "0\n"},
		{name: "backspace", keys: []string{"4", "2", "DEL"}, want: "4\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := eval(&out, tc.keys, false); err != nil {
				t.Fatalf("eval() failed: %v", err)
			}
			if out.String() != tc.want {
				t.Errorf("output = %q, want %q", out.String(), tc.want)
			}
		})
	}
}

func TestEvalStepsPrintsEveryKey(t *testing.T) {
	var out bytes.Buffer
	keys := []string{"5", "+", "-", "3", ".", ".", "=", "="}
	if err := eval(&out, keys, true); err != nil {
		t.Fatalf("eval() failed: %v", err)
	}

	want := []string{"5    5", "+    5", "-    5", "3    3", ".    3.", ".    3.", "=    2", "=    2"}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestEvalStepsUsesBackspacePolicy(t *testing.T) {
	var out bytes.Buffer
	opts := []calculator.Option{calculator.WithBackspacePolicy(calculator.BackspaceKeepEmpty)}
	if err := eval(&out, []string{"7", "DEL"}, true, opts...); err != nil {
		t.Fatalf("eval() failed: %v", err)
	}

	if got, want := out.String(), "7    7\nDEL  \n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestEvalUnknownKey(t *testing.T) {
	var out bytes.Buffer
	err := eval(&out, []string{"1", "%"}, false)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), `"%" at position 2`) {
		t.Errorf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestEvalCommandBackspaceFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"eval", "--backspace", "empty", "7", "DEL"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		backspace = "zero"
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if out.String() != "\n" {
		t.Errorf("output = %q, want an empty display line", out.String())
	}
}

func TestEvalCommandRejectsBadPolicy(t *testing.T) {
	rootCmd.SetArgs([]string{"eval", "--backspace", "never", "1"})
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		backspace = "zero"
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unknown backspace policy")
	}
}
