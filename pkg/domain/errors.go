package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyTape is returned when a machine is built over a tape with no cells.
var ErrEmptyTape = errors.New("tape must contain at least one cell")

// ErrInvalidToken is returned when a token does not name a state, symbol or move.
var ErrInvalidToken = errors.New("invalid token")

// ErrFieldCount is returned when a rule line does not split into five fields.
var ErrFieldCount = errors.New("rule must have exactly 5 fields")

// ErrProgramNotFound is returned when a program name cannot be found in the store.
var ErrProgramNotFound = errors.New("program not found")

// ErrInvalidName is returned when a program name is empty or not a single path segment.
var ErrInvalidName = errors.New("invalid program name")

// ErrSessionNotFound is returned when a stepping session id is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidProgram is returned when a store refuses a program that would not run.
var ErrInvalidProgram = errors.New("invalid program")

// ParseError describes a token or line that could not be decoded.
// Line is 1-based and zero when the input is not line oriented.
type ParseError struct {
	Line  int
	Field string
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	var loc string
	if e.Line > 0 {
		loc = fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s%v (%q)", loc, e.Err, e.Token)
	}
	return fmt.Sprintf("%s%s %q: %v", loc, e.Field, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
