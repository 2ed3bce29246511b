package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// Builder manages the program construction.
type Builder struct {
	program domain.Program
	tapeSet bool
	rules   []*RuleBuilder
}

// New creates a new program builder.
// Until told otherwise the program starts in domain.DefaultInitialState on
// domain.DefaultTape.
func New(name string) *Builder {
	return &Builder{
		program: domain.Program{
			Name:         name,
			InitialState: domain.DefaultInitialState,
		},
	}
}

// Describe sets the program description.
func (b *Builder) Describe(text string) *Builder {
	b.program.Description = text
	return b
}

// Initial sets the state the machine starts in.
func (b *Builder) Initial(s domain.State) *Builder {
	b.program.InitialState = s
	return b
}

// Tape sets the initial tape contents.
func (b *Builder) Tape(symbols ...domain.Symbol) *Builder {
	b.program.Tape = append([]domain.Symbol(nil), symbols...)
	b.tapeSet = true
	return b
}

// On adds a rule for the given state and symbol under the head.
// Unless configured further the rule rewrites the same symbol, moves right
// and stays in the same state.
func (b *Builder) On(s domain.State, read domain.Symbol) *RuleBuilder {
	rb := &RuleBuilder{
		rule: domain.Rule{
			State: s,
			Read:  read,
			Write: read,
			Move:  domain.MoveRight,
			Next:  s,
		},
	}
	b.rules = append(b.rules, rb)
	return rb
}

// Build validates the tokens and returns the program.
// Rules keep their declaration order, so a later rule for the same key
// wins once loaded into a table.
func (b *Builder) Build() (*domain.Program, error) {
	p := b.program
	if !p.InitialState.Valid() {
		return nil, fmt.Errorf("invalid initial state %d: %w", p.InitialState, domain.ErrInvalidToken)
	}

	if !b.tapeSet {
		p.Tape = append([]domain.Symbol(nil), domain.DefaultTape...)
	}
	if len(p.Tape) == 0 {
		return nil, domain.ErrEmptyTape
	}
	for i, sym := range p.Tape {
		if !sym.Valid() {
			return nil, fmt.Errorf("tape cell %d: invalid symbol %d: %w", i, sym, domain.ErrInvalidToken)
		}
	}

	var errs []error
	p.Rules = make([]domain.Rule, 0, len(b.rules))
	for i, rb := range b.rules {
		if err := rb.validate(); err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i+1, err))
			continue
		}
		p.Rules = append(p.Rules, rb.rule)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return p.Clone(), nil
}

// MustBuild is like Build but panics on error.
// It is intended for package-level program definitions.
func (b *Builder) MustBuild() *domain.Program {
	p, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("dsl: %s: %v", b.program.Name, err))
	}
	return p
}
