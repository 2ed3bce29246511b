package dsl

import (
	"fmt"

	"github.com/aretw0/turing/pkg/domain"
)

// RuleBuilder provides a fluent API for configuring a rule.
type RuleBuilder struct {
	rule domain.Rule
}

// Write sets the symbol written under the head.
func (r *RuleBuilder) Write(s domain.Symbol) *RuleBuilder {
	r.rule.Write = s
	return r
}

// Move sets the head displacement.
func (r *RuleBuilder) Move(m domain.Move) *RuleBuilder {
	r.rule.Move = m
	return r
}

// Left moves the head one cell to the left.
func (r *RuleBuilder) Left() *RuleBuilder {
	return r.Move(domain.MoveLeft)
}

// Right moves the head one cell to the right.
func (r *RuleBuilder) Right() *RuleBuilder {
	return r.Move(domain.MoveRight)
}

// Go sets the next state.
func (r *RuleBuilder) Go(s domain.State) *RuleBuilder {
	r.rule.Next = s
	return r
}

// Halt is shorthand for Go(domain.StateHalt).
func (r *RuleBuilder) Halt() *RuleBuilder {
	return r.Go(domain.StateHalt)
}

// Build returns the underlying domain.Rule.
func (r *RuleBuilder) Build() domain.Rule {
	return r.rule
}

func (r *RuleBuilder) validate() error {
	switch {
	case !r.rule.State.Valid():
		return fmt.Errorf("state %d: %w", r.rule.State, domain.ErrInvalidToken)
	case !r.rule.Read.Valid():
		return fmt.Errorf("read %d: %w", r.rule.Read, domain.ErrInvalidToken)
	case !r.rule.Write.Valid():
		return fmt.Errorf("write %d: %w", r.rule.Write, domain.ErrInvalidToken)
	case !r.rule.Move.Valid():
		return fmt.Errorf("move %d: %w", r.rule.Move, domain.ErrInvalidToken)
	case !r.rule.Next.Valid():
		return fmt.Errorf("next %d: %w", r.rule.Next, domain.ErrInvalidToken)
	}
	return nil
}
