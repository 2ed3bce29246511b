package domain

// Direction names the end of the tape that grew.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// StepEvent is emitted after every executed step.
// State and Symbol are the post-step control state and the symbol now under the head.
type StepEvent struct {
	Step     int    `json:"step"`
	State    State  `json:"state"`
	Symbol   Symbol `json:"symbol"`
	Position int    `json:"position"`
	Halted   bool   `json:"halted"`
}

// HaltEvent is emitted once when a run finishes.
type HaltEvent struct {
	Steps    int    `json:"steps"`
	Position int    `json:"position"`
	TapeLen  int    `json:"tape_len"`
	Symbol   Symbol `json:"symbol"`
}

// GrowEvent is emitted whenever the tape is extended with a Blank cell.
type GrowEvent struct {
	Step      int       `json:"step"`
	Direction Direction `json:"direction"`
	TapeLen   int       `json:"tape_len"`
}

// LifecycleHooks defines callbacks for machine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStep func(StepEvent)
	OnHalt func(HaltEvent)
	OnGrow func(GrowEvent)
}

// ChainHooks returns hooks that call each of the given hooks in order.
func ChainHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(e StepEvent) {
			for _, h := range hooks {
				if h.OnStep != nil {
					h.OnStep(e)
				}
			}
		},
		OnHalt: func(e HaltEvent) {
			for _, h := range hooks {
				if h.OnHalt != nil {
					h.OnHalt(e)
				}
			}
		},
		OnGrow: func(e GrowEvent) {
			for _, h := range hooks {
				if h.OnGrow != nil {
					h.OnGrow(e)
				}
			}
		},
	}
}
