package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/ports"
)

// Overrides replace parts of a program's initial configuration.
type Overrides struct {
	State string
	Tape  string
}

// ResolveProgram treats ref as a file path when such a file exists and as
// a stored program name otherwise.
func ResolveProgram(ctx context.Context, store ports.ProgramStore, ref string) (*domain.Program, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return loader.LoadProgram(ref)
	}

	p, err := store.Load(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrProgramNotFound) {
			return nil, fmt.Errorf("%q is neither a file nor a stored program: %w", ref, err)
		}
		return nil, err
	}
	return p, nil
}

// Apply parses and applies the overrides to p.
func (o Overrides) Apply(p *domain.Program) error {
	if o.State != "" {
		s, err := domain.ParseState(o.State)
		if err != nil {
			return fmt.Errorf("--state: %w", err)
		}
		p.InitialState = s
	}
	if o.Tape != "" {
		tape, err := loader.ParseTape(o.Tape)
		if err != nil {
			return fmt.Errorf("--tape: %w", err)
		}
		p.Tape = tape
	}
	return nil
}
