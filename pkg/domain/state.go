package domain

import "strconv"

// State is a machine control state.
// The set is closed: A, B, C and the terminal Halt.
type State uint8

const (
	StateA State = iota
	StateB
	StateC
	StateHalt // Terminal: no rule is ever consulted once a machine holds it.
)

// States lists every control state in declaration order.
var States = []State{StateA, StateB, StateC, StateHalt}

var stateTokens = [...]string{
	StateA:    "A",
	StateB:    "B",
	StateC:    "C",
	StateHalt: "Halt",
}

// String returns the token used by rule files ("A", "B", "C", "Halt").
func (s State) String() string {
	if int(s) < len(stateTokens) {
		return stateTokens[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Name returns the display name used in diagnostics. For states it is the
// rule-file token.
func (s State) Name() string {
	return s.String()
}

// Valid reports whether s is one of the declared states.
func (s State) Valid() bool {
	return int(s) < len(stateTokens)
}

// IsHalt reports whether s is the terminal state.
func (s State) IsHalt() bool {
	return s == StateHalt
}

// ParseState converts a rule-file token into a State.
func ParseState(token string) (State, error) {
	for i, t := range stateTokens {
		if t == token {
			return State(i), nil
		}
	}
	return 0, &ParseError{Field: "state", Token: token, Err: ErrInvalidToken}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &ParseError{Field: "state", Token: s.String(), Err: ErrInvalidToken}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
