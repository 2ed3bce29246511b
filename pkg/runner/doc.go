/*
Package runner drives a machine one step at a time and reports each step to a
pluggable handler.

The machine's own Run has no bound: a rule table can loop forever. Runner is
the bounded alternative. It calls Step in a loop and stops when the machine
halts, when MaxSteps is reached (ErrStepLimit) or when the context is done.

# Key Components

  - Runner: the execution loop.
  - Handler: receives every StepResult and the final Snapshot.
  - TextHandler: the classic "Current state: B, Current symbol: Zero" output.
  - JSONHandler: one JSON object per line, for tooling.
  - Recorder: keeps the trace in memory (tests, HTTP and MCP adapters).

# Usage

	r := runner.New(
		runner.WithMaxSteps(10_000),
		runner.WithHandler(runner.NewTextHandler(os.Stdout)),
	)

	res, err := r.Run(ctx, machine)
*/
package runner
