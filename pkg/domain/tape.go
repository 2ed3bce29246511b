package domain

import (
	"fmt"
	"strings"
)

// Tape is a double-ended, growable sequence of symbols.
//
// It is stored as two stacks joined at the origin: front holds the cells
// left of the origin in reverse order, back holds the origin and everything
// to its right. Growing at either end is an append, so both directions are
// O(1) amortised and no cell is ever shifted.
type Tape struct {
	front []Symbol
	back  []Symbol
}

// NewTape copies symbols into a new tape. An empty slice is rejected.
func NewTape(symbols []Symbol) (*Tape, error) {
	if len(symbols) == 0 {
		return nil, ErrEmptyTape
	}
	back := make([]Symbol, len(symbols))
	copy(back, symbols)
	return &Tape{back: back}, nil
}

// Len returns the number of cells.
func (t *Tape) Len() int {
	return len(t.front) + len(t.back)
}

// At returns the symbol in cell i. It panics if i is out of range.
func (t *Tape) At(i int) Symbol {
	if i < len(t.front) {
		return t.front[len(t.front)-1-i]
	}
	return t.back[i-len(t.front)]
}

// Set overwrites cell i. It panics if i is out of range.
func (t *Tape) Set(i int, s Symbol) {
	if i < len(t.front) {
		t.front[len(t.front)-1-i] = s
		return
	}
	t.back[i-len(t.front)] = s
}

// PushFront grows the tape by one cell on the left.
// Every existing index shifts up by one.
func (t *Tape) PushFront(s Symbol) {
	t.front = append(t.front, s)
}

// PushBack grows the tape by one cell on the right.
func (t *Tape) PushBack(s Symbol) {
	t.back = append(t.back, s)
}

// Symbols returns a copy of the cells, leftmost first.
func (t *Tape) Symbols() []Symbol {
	out := make([]Symbol, 0, t.Len())
	for i := len(t.front) - 1; i >= 0; i-- {
		out = append(out, t.front[i])
	}
	return append(out, t.back...)
}

// String renders the tape compactly, e.g. "01_0".
func (t *Tape) String() string {
	return FormatTape(t.Symbols())
}

// FormatTape renders symbols with one glyph per cell ('_' for Blank).
func FormatTape(symbols []Symbol) string {
	var sb strings.Builder
	sb.Grow(len(symbols))
	for _, s := range symbols {
		sb.WriteByte(s.Glyph())
	}
	return sb.String()
}

// GoString is used by %#v in test failure output.
func (t *Tape) GoString() string {
	return fmt.Sprintf("domain.Tape(%q)", t.String())
}
