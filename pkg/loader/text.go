package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// ParseRules reads rule rows in the line format
//
//	state,symbol,write,move,next
//
// e.g. "A,0,1,R,B". Fields are trimmed. Blank lines and lines starting with
// '#' are ignored. Every malformed line is reported and, if there is at
// least one, the whole load fails: a partial rule table is never returned.
func ParseRules(r io.Reader) ([]domain.Rule, error) {
	var (
		out  []domain.Rule
		errs []error
		line int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rule, err := ParseRule(text)
		if err != nil {
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				pe.Line = line
			}
			errs = append(errs, err)
			continue
		}
		out = append(out, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// ParseRule parses a single "state,symbol,write,move,next" row.
func ParseRule(text string) (domain.Rule, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 5 {
		return domain.Rule{}, &domain.ParseError{Token: text, Err: domain.ErrFieldCount}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var (
		r   domain.Rule
		err error
	)
	if r.State, err = domain.ParseState(parts[0]); err != nil {
		return domain.Rule{}, err
	}
	if r.Read, err = domain.ParseSymbol(parts[1]); err != nil {
		return domain.Rule{}, err
	}
	if r.Write, err = domain.ParseSymbol(parts[2]); err != nil {
		return domain.Rule{}, err
	}
	if r.Move, err = domain.ParseMove(parts[3]); err != nil {
		return domain.Rule{}, err
	}
	if r.Next, err = domain.ParseState(parts[4]); err != nil {
		return domain.Rule{}, err
	}
	return r, nil
}

// FormatRules writes rules back in the line format read by ParseRules.
func FormatRules(w io.Writer, rules []domain.Rule) error {
	for _, r := range rules {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}

// ParseTape accepts either a compact string with one glyph per cell
// ("0100", '_' for Blank) or tokens separated by commas or spaces
// ("0, 1, Blank").
func ParseTape(text string) ([]domain.Symbol, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyTape
	}

	if !strings.ContainsAny(text, ", \t") && !strings.Contains(text, "Blank") {
		out := make([]domain.Symbol, 0, len(text))
		for _, c := range text {
			switch c {
			case '0':
				out = append(out, domain.SymbolZero)
			case '1':
				out = append(out, domain.SymbolOne)
			case '_':
				out = append(out, domain.SymbolBlank)
			default:
				return nil, &domain.ParseError{Field: "tape", Token: string(c), Err: domain.ErrInvalidToken}
			}
		}
		return out, nil
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]domain.Symbol, 0, len(fields))
	for _, f := range fields {
		s, err := domain.ParseSymbol(f)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, domain.ErrEmptyTape
	}
	return out, nil
}

// Duplicates returns the keys that appear more than once in rules, in the
// order their second occurrence is found. The rule table keeps the last one.
func Duplicates(rules []domain.Rule) []domain.Key {
	seen := make(map[domain.Key]int)
	var out []domain.Key
	for _, r := range rules {
		k := r.Key()
		seen[k]++
		if seen[k] == 2 {
			out = append(out, k)
		}
	}
	return out
}
