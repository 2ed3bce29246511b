package runner

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// Handler is notified by the Runner after each step and once on halt.
// Returning an error stops the run.
type Handler interface {
	Step(ctx context.Context, res domain.StepResult) error
	Halt(ctx context.Context, snap domain.Snapshot) error
}

type discard struct{}

func (discard) Step(context.Context, domain.StepResult) error { return nil }
func (discard) Halt(context.Context, domain.Snapshot) error   { return nil }

// Discard is a Handler that ignores everything.
var Discard Handler = discard{}

// MultiHandler forwards to every handler in order, stopping at the first error.
type MultiHandler []Handler

func (m MultiHandler) Step(ctx context.Context, res domain.StepResult) error {
	for _, h := range m {
		if err := h.Step(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiHandler) Halt(ctx context.Context, snap domain.Snapshot) error {
	for _, h := range m {
		if err := h.Halt(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

// Recorder keeps every step in memory.
type Recorder struct {
	Steps []domain.StepResult
	Final *domain.Snapshot
}

func (r *Recorder) Step(_ context.Context, res domain.StepResult) error {
	r.Steps = append(r.Steps, res)
	return nil
}

func (r *Recorder) Halt(_ context.Context, snap domain.Snapshot) error {
	r.Final = &snap
	return nil
}

// Events returns the recorded steps as observer events.
func (r *Recorder) Events() []domain.StepEvent {
	out := make([]domain.StepEvent, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Event()
	}
	return out
}
