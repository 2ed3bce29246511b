package domain

import "strconv"

// Symbol is the content of a tape cell.
type Symbol uint8

const (
	SymbolZero Symbol = iota
	SymbolOne
	SymbolBlank // Fills every cell the tape grows into.
)

// Symbols lists every tape symbol in declaration order.
var Symbols = []Symbol{SymbolZero, SymbolOne, SymbolBlank}

var symbolTokens = [...]string{
	SymbolZero:  "0",
	SymbolOne:   "1",
	SymbolBlank: "Blank",
}

// String returns the rule-file token ("0", "1", "Blank").
func (s Symbol) String() string {
	if int(s) < len(symbolTokens) {
		return symbolTokens[s]
	}
	return "Symbol(" + strconv.Itoa(int(s)) + ")"
}

var symbolNames = [...]string{
	SymbolZero:  "Zero",
	SymbolOne:   "One",
	SymbolBlank: "Blank",
}

// Name returns the display name used in diagnostics ("Zero", "One", "Blank").
func (s Symbol) Name() string {
	if int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return s.String()
}

// Valid reports whether s is one of the declared symbols.
func (s Symbol) Valid() bool {
	return int(s) < len(symbolTokens)
}

// Glyph returns a single-character form, used for compact tape strings.
func (s Symbol) Glyph() byte {
	switch s {
	case SymbolZero:
		return '0'
	case SymbolOne:
		return '1'
	default:
		return '_'
	}
}

// ParseSymbol converts a rule-file token into a Symbol.
func ParseSymbol(token string) (Symbol, error) {
	for i, t := range symbolTokens {
		if t == token {
			return Symbol(i), nil
		}
	}
	return 0, &ParseError{Field: "symbol", Token: token, Err: ErrInvalidToken}
}

// MarshalText implements encoding.TextMarshaler.
func (s Symbol) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &ParseError{Field: "symbol", Token: s.String(), Err: ErrInvalidToken}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Symbol) UnmarshalText(text []byte) error {
	v, err := ParseSymbol(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
