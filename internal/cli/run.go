package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/rules"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/muesli/termenv"
)

// Output modes for RunProgram.
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputQuiet = "quiet"
)

// RunOptions configures a single CLI run.
type RunOptions struct {
	Output     string
	ShowTape   bool
	Banner     bool
	PrintRules bool
	MaxSteps   int
	Color      string
}

// RunProgram executes p on eng and writes the trace to w.
// Hitting the step limit is reported as an error; an interrupt is not.
func RunProgram(ctx context.Context, eng *turing.Engine, p *domain.Program, w io.Writer, opts RunOptions) (runner.Result, error) {
	var handler runner.Handler
	switch opts.Output {
	case OutputJSON:
		handler = runner.NewJSONHandler(w)
	case OutputQuiet:
		handler = runner.Discard
	case OutputText, "":
		h := runner.NewTextHandler(w, colorOptions(opts.Color)...)
		h.ShowTape = opts.ShowTape
		handler = h
		if opts.Banner {
			tui.PrintBanner(w, colorOptions(opts.Color)...)
		}
		if opts.PrintRules {
			if err := PrintRules(w, p.Rules); err != nil {
				return runner.Result{}, err
			}
		}
	default:
		return runner.Result{}, fmt.Errorf("unknown output %q", opts.Output)
	}

	runOpts := []runner.Option{runner.WithHandler(handler)}
	if opts.MaxSteps > 0 {
		runOpts = append(runOpts, runner.WithMaxSteps(opts.MaxSteps))
	}

	res, err := eng.Run(ctx, p, runOpts...)
	if errors.Is(err, context.Canceled) {
		if opts.Output == OutputText || opts.Output == "" {
			fmt.Fprintf(w, "Interrupted after %d steps.\n", res.Steps)
		}
		return res, nil
	}
	return res, err
}

// PrintRules writes the effective rule table, one line per (state, symbol) pair.
func PrintRules(w io.Writer, list []domain.Rule) error {
	for _, r := range rules.New(list...).Rules() {
		_, err := fmt.Fprintf(w, "State: %s, Symbol: %s => Write: %s, Move: %s, Next State: %s\n",
			r.State.Name(), r.Read.Name(), r.Write.Name(), r.Move.Name(), r.Next.Name())
		if err != nil {
			return err
		}
	}
	return nil
}

func colorOptions(mode string) []termenv.OutputOption {
	switch mode {
	case "never":
		return []termenv.OutputOption{termenv.WithProfile(termenv.Ascii)}
	case "always":
		return []termenv.OutputOption{termenv.WithProfile(termenv.TrueColor)}
	}
	return nil
}
