package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ProgramStore
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every store call at
// debug level and failures at warn level. A missing program is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ProgramStore) ports.ProgramStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if name != "" {
		attrs = append(attrs, "program", name)
	}
	if err != nil && !errors.Is(err, domain.ErrProgramNotFound) {
		m.logger.WarnContext(ctx, "store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, p *domain.Program) error {
	start := time.Now()
	err := m.next.Save(ctx, p)
	m.log(ctx, "save", p.Name, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*domain.Program, error) {
	start := time.Now()
	p, err := m.next.Load(ctx, name)
	m.log(ctx, "load", name, start, err)
	return p, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log(ctx, "delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return names, err
}
