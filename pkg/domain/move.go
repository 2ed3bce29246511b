package domain

import "strconv"

// Move is the head displacement applied by a transition.
type Move uint8

const (
	MoveLeft Move = iota
	MoveRight
)

// String returns the rule-file token ("L" or "R").
func (m Move) String() string {
	switch m {
	case MoveLeft:
		return "L"
	case MoveRight:
		return "R"
	}
	return "Move(" + strconv.Itoa(int(m)) + ")"
}

// Name returns the display name used in diagnostics ("Left" or "Right").
func (m Move) Name() string {
	switch m {
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	}
	return m.String()
}

// Valid reports whether m is Left or Right.
func (m Move) Valid() bool {
	return m == MoveLeft || m == MoveRight
}

// ParseMove converts "L" or "R" into a Move.
func ParseMove(token string) (Move, error) {
	switch token {
	case "L":
		return MoveLeft, nil
	case "R":
		return MoveRight, nil
	}
	return 0, &ParseError{Field: "move", Token: token, Err: ErrInvalidToken}
}

// MarshalText implements encoding.TextMarshaler.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, &ParseError{Field: "move", Token: m.String(), Err: ErrInvalidToken}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Move) UnmarshalText(text []byte) error {
	v, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
