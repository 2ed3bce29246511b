package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// ErrStepLimit is returned when MaxSteps steps ran without the machine halting.
var ErrStepLimit = errors.New("step limit reached before halt")

// Stepper is the part of a machine the runner needs.
type Stepper interface {
	Step() domain.StepResult
	Halted() bool
	Snapshot() domain.Snapshot
	NotifyHalt()
}

// Runner handles the bounded execution loop.
type Runner struct {
	// MaxSteps bounds a single Run. Zero or negative means unbounded.
	MaxSteps int

	// Handler receives each step and the final snapshot.
	// If nil, results are discarded.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Result summarises a Run.
type Result struct {
	Steps    int
	Halted   bool
	Snapshot domain.Snapshot
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run steps m until it halts, the step limit is hit or ctx is done.
// On halt the machine's observers and the handler are notified once.
// The returned Result is valid even when err is not nil.
func (r *Runner) Run(ctx context.Context, m Stepper) (Result, error) {
	handler := r.Handler
	if handler == nil {
		handler = Discard
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var res Result
	for !m.Halted() {
		if err := ctx.Err(); err != nil {
			res.Snapshot = m.Snapshot()
			logger.Debug("run canceled", "steps", res.Steps, "err", err)
			return res, err
		}
		if r.MaxSteps > 0 && res.Steps >= r.MaxSteps {
			res.Snapshot = m.Snapshot()
			logger.Debug("step limit reached", "steps", res.Steps)
			return res, fmt.Errorf("%w (%d steps)", ErrStepLimit, r.MaxSteps)
		}

		step := m.Step()
		res.Steps++
		if err := handler.Step(ctx, step); err != nil {
			res.Snapshot = m.Snapshot()
			return res, fmt.Errorf("output error: %w", err)
		}
	}

	res.Halted = true
	res.Snapshot = m.Snapshot()
	m.NotifyHalt()
	logger.Debug("halted", "steps", res.Steps, "position", res.Snapshot.Position)

	if err := handler.Halt(ctx, res.Snapshot); err != nil {
		return res, fmt.Errorf("output error: %w", err)
	}
	return res, nil
}
