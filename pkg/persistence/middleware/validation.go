package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type validationMiddleware struct {
	ports.ProgramStore
}

// NewValidationMiddleware creates a middleware that refuses to save programs
// with error-level validation issues. Warnings pass through.
func NewValidationMiddleware() Middleware {
	return func(next ports.ProgramStore) ports.ProgramStore {
		return &validationMiddleware{ProgramStore: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, p *domain.Program) error {
	if err := validator.Validate(p).Err(); err != nil {
		return fmt.Errorf("%w %q: %w", domain.ErrInvalidProgram, p.Name, err)
	}
	return m.ProgramStore.Save(ctx, p)
}
