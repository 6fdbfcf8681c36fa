package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/asphodex/tmsim/internal/configuration"
	"github.com/asphodex/tmsim/internal/engine"
	"github.com/asphodex/tmsim/internal/machine"
	"github.com/asphodex/tmsim/internal/parser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const renderWindow = 16

type cliFlags struct {
	trace     bool
	wordsPath string
	strict    bool
	maxSteps  uint64
	info      bool
}

func newRootCommand(logger *zap.Logger) *cobra.Command {
	flags := &cliFlags{maxSteps: 1000}

	cmd := &cobra.Command{
		Use:           "tmsim <machine-file> [flags]",
		Short:         "Simulate a deterministic Turing machine against a batch of words",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], flags, logger)
		},
	}

	cmd.Flags().BoolVar(&flags.trace, "trace", false, "emit the step-by-step trace to stdout after the per-word result")
	cmd.Flags().StringVar(&flags.wordsPath, "words", "", "read words from a file (one per line) instead of stdin")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat a word containing non-Sigma symbols as an error")
	cmd.Flags().Uint64Var(&flags.maxSteps, "max-steps", 1000, "step budget; 0 means unbounded")
	cmd.Flags().BoolVar(&flags.info, "info", false, "print machine summary and exit")

	return cmd
}

func run(cmd *cobra.Command, machinePath string, flags *cliFlags, logger *zap.Logger) error {
	p := parser.New(parser.WithLogger(logger))

	m, err := p.ParseFile(machinePath)
	if err != nil {
		return newExitError(2, fmt.Sprintf("tmsim: failed to load %q: %v", machinePath, err))
	}

	if flags.info {
		printInfo(cmd.OutOrStdout(), m)
		return nil
	}

	words, err := readWords(cmd, flags.wordsPath)
	if err != nil {
		return newExitError(3, fmt.Sprintf("tmsim: failed to read words: %v", err))
	}

	e := engine.New(m, engine.WithLogger(logger), engine.WithMaxSteps(flags.maxSteps))
	out := cmd.OutOrStdout()

	for _, word := range words {
		runWord(cmd, e, m, word, flags, out)
	}

	return nil
}

// runWord executes one word and prints its result line plus tape rendering.
// --strict alphabet-gate routing lives here, not in the Engine: the Engine
// always reports an out-of-Sigma word as ERROR (spec §7's InputError), and
// the CLI downgrades that to a silent REJECT unless --strict was given.
//
// The alphabet gate in engine.Simulate fires before it ever calls reset, so
// e.Config() still holds whatever the previous word left behind (or nil, on
// the first word) - never this word's tape. Both branches below render the
// word itself via renderUnloadedWord instead of touching e.Config().
func runWord(cmd *cobra.Command, e *engine.Engine, m *machine.Machine, word string, flags *cliFlags, out io.Writer) {
	result := e.Simulate(context.Background(), word, flags.trace)

	if result.Result == engine.Error && errors.Is(result.Err, engine.ErrInputAlphabet) {
		if flags.strict {
			fmt.Fprintf(cmd.ErrOrStderr(), "tmsim: word %q: %v\n", word, result.Err)
			fmt.Fprintln(out, result.Result)
		} else {
			fmt.Fprintln(out, engine.Rejected)
		}

		fmt.Fprintln(out, renderUnloadedWord(m, word))

		return
	}

	fmt.Fprintln(out, result.Result)
	fmt.Fprintln(out, renderResultTapes(m, e.Config()))

	if flags.trace {
		printTrace(out, e)
	}
}

// renderUnloadedWord formats the tape line for a word stopped by the
// engine's alphabet gate (in strict and non-strict mode alike) before ever
// being loaded onto the engine: the word itself is the only tape content
// there is.
func renderUnloadedWord(m *machine.Machine, word string) string {
	if m.TapeCount() == 1 {
		return "Cinta final: " + word
	}

	return "Cintas finales:\n" + word
}

// renderResultTapes formats the final tape(s) per spec §6.2: a single
// "Cinta final: <window>" line for a mono machine, or "Cintas finales:"
// followed by one line per tape for a multi-tape machine. cfg is nil only
// if Simulate errored before ever calling reset; that case has no tape
// state to show.
func renderResultTapes(m *machine.Machine, cfg *configuration.Configuration) string {
	if cfg == nil {
		if m.TapeCount() == 1 {
			return "Cinta final: "
		}

		return "Cintas finales:"
	}

	if m.TapeCount() == 1 {
		return "Cinta final: " + cfg.Tapes[0].Render(renderWindow)
	}

	var sb []byte

	sb = append(sb, "Cintas finales:"...)

	for _, t := range cfg.Tapes {
		sb = append(sb, '\n')
		sb = append(sb, t.Render(renderWindow)...)
	}

	return string(sb)
}

func printInfo(w io.Writer, m *machine.Machine) {
	fmt.Fprintf(w, "Estados: %d\n", len(m.States()))
	fmt.Fprintf(w, "Cintas: %d\n", m.TapeCount())
	fmt.Fprintf(w, "Estado inicial: %s\n", m.InitialState())
	fmt.Fprintf(w, "Estados de aceptacion: %d\n", len(m.AcceptStates()))
	fmt.Fprintf(w, "Alfabeto de entrada: %d simbolos\n", len(m.InputAlphabet()))
	fmt.Fprintf(w, "Alfabeto de cinta: %d simbolos\n", len(m.TapeAlphabet()))
	fmt.Fprintf(w, "Simbolo en blanco: %q\n", m.Blank())
}

func printTrace(w io.Writer, e *engine.Engine) {
	for i, cfg := range e.Trace() {
		fmt.Fprintf(w, "  paso %d: estado=%s", i, cfg.State)

		for j, t := range cfg.Tapes {
			fmt.Fprintf(w, " cinta%d=%s", j, t.Render(renderWindow))
		}

		fmt.Fprintln(w)
	}
}
