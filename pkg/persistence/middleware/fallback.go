package middleware

import (
	"context"
	"errors"
	"slices"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
)

type fallbackMiddleware struct {
	ports.ProgramStore
	reg *registry.Registry
}

// NewFallbackMiddleware creates a middleware that serves programs from reg
// when the store does not hold them. Stored programs shadow catalogued ones
// of the same name, and List reports the union of both.
func NewFallbackMiddleware(reg *registry.Registry) Middleware {
	return func(next ports.ProgramStore) ports.ProgramStore {
		return &fallbackMiddleware{ProgramStore: next, reg: reg}
	}
}

func (m *fallbackMiddleware) Load(ctx context.Context, name string) (*domain.Program, error) {
	p, err := m.ProgramStore.Load(ctx, name)
	if errors.Is(err, domain.ErrProgramNotFound) {
		if builtin, rerr := m.reg.Get(name); rerr == nil {
			return builtin, nil
		}
	}
	return p, err
}

func (m *fallbackMiddleware) List(ctx context.Context) ([]string, error) {
	names, err := m.ProgramStore.List(ctx)
	if err != nil {
		return nil, err
	}
	names = append(names, m.reg.Names()...)
	slices.Sort(names)
	return slices.Compact(names), nil
}
