package runtime

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/rules"
)

// ErrNilTable is returned when a machine is built without a rule table.
var ErrNilTable = errors.New("rule table is required")

// Machine is a single-tape Turing machine.
// It owns its state, tape and head position; the rule table is shared read-only.
// A Machine is not safe for concurrent use.
type Machine struct {
	table    *rules.Table
	state    domain.State
	tape     *domain.Tape
	position int
	steps    int

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// MachineOption defines a functional option for configuring a Machine.
type MachineOption func(*Machine)

// WithLifecycleHooks registers the observer notified after each step,
// on tape growth, and when Run finishes.
func WithLifecycleHooks(hooks domain.LifecycleHooks) MachineOption {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithLogger sets the structured logger. Steps are logged at debug level.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMachine creates a machine in the initial state with the head on the
// leftmost cell of tape. The tape is copied.
func NewMachine(table *rules.Table, initial domain.State, tape []domain.Symbol, opts ...MachineOption) (*Machine, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	if !initial.Valid() {
		return nil, fmt.Errorf("initial state: %w", &domain.ParseError{Field: "state", Token: initial.String(), Err: domain.ErrInvalidToken})
	}
	t, err := domain.NewTape(tape)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		table:  table,
		state:  initial,
		tape:   t,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Step executes one transition.
//
// The symbol under the head is read and (state, symbol) is looked up. A match
// writes the cell, enters the next state and moves the head, growing the tape
// with a Blank when the head would leave it. No match sets the state to Halt
// and leaves tape and head untouched. Calling Step on a halted machine is a
// no-op that reports OutcomeHalted with Noop set and notifies nobody.
func (m *Machine) Step() domain.StepResult {
	if m.state.IsHalt() {
		return domain.StepResult{
			Outcome:  domain.OutcomeHalted,
			State:    m.state,
			Symbol:   m.tape.At(m.position),
			Position: m.position,
			Step:     m.steps,
			Noop:     true,
		}
	}

	read := m.tape.At(m.position)
	from := m.state
	tr, ok := m.table.Lookup(from, read)
	m.steps++

	outcome := domain.OutcomeContinued
	if ok {
		m.tape.Set(m.position, tr.Write)
		m.state = tr.Next
		m.move(tr.Move)
		if m.state.IsHalt() {
			outcome = domain.OutcomeHalted
		}
	} else {
		m.state = domain.StateHalt
		outcome = domain.OutcomeHalted
	}

	m.assertHead()

	res := domain.StepResult{
		Outcome:  outcome,
		State:    m.state,
		Symbol:   m.tape.At(m.position),
		Position: m.position,
		Step:     m.steps,
	}

	m.logger.Debug("step",
		"step", m.steps,
		"from", from,
		"read", read,
		"matched", ok,
		"state", res.State,
		"symbol", res.Symbol,
		"position", res.Position,
	)
	if m.hooks.OnStep != nil {
		m.hooks.OnStep(res.Event())
	}
	return res
}

func (m *Machine) move(dir domain.Move) {
	switch dir {
	case domain.MoveLeft:
		if m.position == 0 {
			m.tape.PushFront(domain.SymbolBlank)
			m.grew(domain.DirectionLeft)
		} else {
			m.position--
		}
	case domain.MoveRight:
		m.position++
		if m.position == m.tape.Len() {
			m.tape.PushBack(domain.SymbolBlank)
			m.grew(domain.DirectionRight)
		}
	default:
		panic(fmt.Sprintf("turing: invalid move %v", dir))
	}
}

func (m *Machine) grew(dir domain.Direction) {
	if m.hooks.OnGrow != nil {
		m.hooks.OnGrow(domain.GrowEvent{Step: m.steps, Direction: dir, TapeLen: m.tape.Len()})
	}
}

// assertHead panics if the head left the tape. That can only happen through
// a bug in move, never through input.
func (m *Machine) assertHead() {
	if m.position < 0 || m.position >= m.tape.Len() {
		panic(fmt.Sprintf("turing: head position %d outside tape of length %d", m.position, m.tape.Len()))
	}
}

// Run steps the machine until it halts and returns the number of steps taken
// by this call. A machine created in Halt returns 0. There is no step bound:
// a rule table that never reaches an undefined pair runs forever. Callers
// that need a bound should drive Step themselves (see package runner).
func (m *Machine) Run() int {
	start := m.steps
	for !m.state.IsHalt() {
		m.Step()
	}
	m.logger.Debug("halted", "steps", m.steps, "position", m.position, "tape_len", m.tape.Len())
	m.NotifyHalt()
	return m.steps - start
}

// HaltEvent describes the machine as it is now, in the shape sent to OnHalt.
func (m *Machine) HaltEvent() domain.HaltEvent {
	return domain.HaltEvent{
		Steps:    m.steps,
		Position: m.position,
		TapeLen:  m.tape.Len(),
		Symbol:   m.tape.At(m.position),
	}
}

// NotifyHalt sends the halt notification to the observer. Run calls it
// itself; callers driving Step directly use it once they are done.
func (m *Machine) NotifyHalt() {
	if m.hooks.OnHalt != nil {
		m.hooks.OnHalt(m.HaltEvent())
	}
}

// State returns the current control state.
func (m *Machine) State() domain.State { return m.state }

// Position returns the head index into Tape().
func (m *Machine) Position() int { return m.position }

// Symbol returns the symbol under the head.
func (m *Machine) Symbol() domain.Symbol { return m.tape.At(m.position) }

// Tape returns a copy of the tape, leftmost cell first.
func (m *Machine) Tape() []domain.Symbol { return m.tape.Symbols() }

// Steps returns how many steps have been executed since creation.
func (m *Machine) Steps() int { return m.steps }

// Halted reports whether the machine is in the Halt state.
func (m *Machine) Halted() bool { return m.state.IsHalt() }

// Snapshot returns a copy of the machine's observable state.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		State:    m.state,
		Position: m.position,
		Tape:     m.tape.Symbols(),
		Steps:    m.steps,
	}
}
