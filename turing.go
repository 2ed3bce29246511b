package turing

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/rules"
	"github.com/aretw0/turing/pkg/runner"
)

// Engine is the high-level entry point for the library.
// It builds machines from programs, wires observers into them and drives
// them with a bounded runner.
type Engine struct {
	store    ports.ProgramStore
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	maxSteps int
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks on every machine the engine builds.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStore injects the program store. Defaults to an empty in-memory store.
func WithStore(s ports.ProgramStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxSteps bounds every Run. Zero means unbounded.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return eng
}

// Store returns the program store the engine reads from.
func (e *Engine) Store() ports.ProgramStore {
	return e.store
}

// MaxSteps returns the configured step bound.
func (e *Engine) MaxSteps() int {
	return e.maxSteps
}

// Machine builds a fresh machine for p, observed by the engine hooks plus extra.
func (e *Engine) Machine(p *domain.Program, extra ...domain.LifecycleHooks) (*Machine, error) {
	hooks := e.hooks
	if len(extra) > 0 {
		hooks = domain.ChainHooks(append([]domain.LifecycleHooks{e.hooks}, extra...)...)
	}
	m, err := NewMachine(rules.New(p.Rules...), p.InitialState, p.Tape,
		MachineHooks(hooks),
		MachineLogger(e.logger.With("program", p.Name)),
	)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", p.Name, err)
	}
	return m, nil
}

// Run executes p until it halts, the step limit is reached or ctx is done.
// Runner options are applied after the engine defaults.
func (e *Engine) Run(ctx context.Context, p *domain.Program, opts ...runner.Option) (runner.Result, error) {
	m, err := e.Machine(p)
	if err != nil {
		return runner.Result{}, err
	}

	base := []runner.Option{
		runner.WithMaxSteps(e.maxSteps),
		runner.WithLogger(e.logger),
	}
	r := runner.New(append(base, opts...)...)

	res, err := r.Run(ctx, m)
	if err != nil {
		e.logger.Warn("run stopped", "program", p.Name, "steps", res.Steps, "error", err)
		return res, err
	}
	e.logger.Info("run halted", "program", p.Name, "steps", res.Steps, "tape_len", len(res.Snapshot.Tape))
	return res, nil
}

// RunStored loads a program by name from the store and runs it.
func (e *Engine) RunStored(ctx context.Context, name string, opts ...runner.Option) (runner.Result, error) {
	p, err := e.store.Load(ctx, name)
	if err != nil {
		return runner.Result{}, fmt.Errorf("failed to load program %q: %w", name, err)
	}
	return e.Run(ctx, p, opts...)
}
