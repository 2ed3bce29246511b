package domain

// StepOutcome tags the result of a single step.
type StepOutcome uint8

const (
	// OutcomeContinued means a rule matched and the machine moved.
	OutcomeContinued StepOutcome = iota
	// OutcomeHalted means no rule matched (or the machine was already halted).
	OutcomeHalted
)

func (o StepOutcome) String() string {
	if o == OutcomeHalted {
		return "halted"
	}
	return "continued"
}

// StepResult is the observable outcome of one call to Step.
type StepResult struct {
	Outcome  StepOutcome
	State    State
	Symbol   Symbol
	Position int
	Step     int

	// Noop is set when Step was called on a machine that had already halted.
	Noop bool
}

// Halted reports whether the machine is in the Halt state after the step.
func (r StepResult) Halted() bool {
	return r.Outcome == OutcomeHalted
}

// Event converts the result into the notification sent to observers.
func (r StepResult) Event() StepEvent {
	return StepEvent{
		Step:     r.Step,
		State:    r.State,
		Symbol:   r.Symbol,
		Position: r.Position,
		Halted:   r.Halted(),
	}
}

// Snapshot is a read-only copy of a machine.
type Snapshot struct {
	State    State    `json:"state"`
	Position int      `json:"position"`
	Tape     []Symbol `json:"tape"`
	Steps    int      `json:"steps"`
}

// Symbol returns the symbol under the head.
func (s Snapshot) Symbol() Symbol {
	return s.Tape[s.Position]
}
