package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/keypad"
	"go-chi-calculator/internal/tui"
)

var (
	backspace string
	showSteps bool

	rootCmd = &cobra.Command{
		Use:          "calc",
		Short:        "A four-function keypad calculator",
		SilenceUsage: true,
	}

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive keypad in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	evalCmd = &cobra.Command{
		Use:   "eval KEY...",
		Short: "Press keys in order and print the display",
		Long: `Press keys in order and print the resulting display.

Keys are digits, ".", "+", "-", "x", "/", "=", "AC" and "DEL", e.g.

  calc eval 1 2 + 3 =`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEval,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&backspace, "backspace", "zero",
		`what backspace leaves behind when the display empties: "zero" or "empty"`)

	rootCmd.AddCommand(tuiCmd)

	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&showSteps, "steps", false, "print the display after every key")
}

func calculatorOptions() ([]calculator.Option, error) {
	policy, err := calculator.ParseBackspacePolicy(backspace)
	if err != nil {
		return nil, err
	}
	return []calculator.Option{calculator.WithBackspacePolicy(policy)}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	opts, err := calculatorOptions()
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(tui.New(calculator.New(opts...))).Run()
	return err
}

func runEval(cmd *cobra.Command, args []string) error {
	opts, err := calculatorOptions()
	if err != nil {
		return err
	}
	return eval(cmd.OutOrStdout(), args, showSteps, opts...)
}

// eval presses keys on a fresh calculator. With steps the calculator's sink
// prints one line per key, otherwise only the final display is printed.
func eval(w io.Writer, keys []string, steps bool, opts ...calculator.Option) error {
	events, idx, ok := keypad.TranslateAll(keys)
	if !ok {
		return fmt.Errorf("unknown key %q at position %d", keys[idx], idx+1)
	}

	var key string
	if steps {
		opts = append(opts, calculator.WithSink(calculator.SinkFunc(func(text string) {
			fmt.Fprintf(w, "%-4s %s\n", key, text)
		})))
	}
	calc := calculator.New(opts...)

	for i, ev := range events {
		key = keys[i]
		calc.Dispatch(ev)
	}

	if !steps {
		fmt.Fprintln(w, calc.Display())
	}
	return nil
}
