package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Contract(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := middleware.Chain(memory.NewStore(),
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
		middleware.NewFallbackMiddleware(registry.NewRegistry()),
	)
	ports.RunProgramStoreContract(t, store)

	assert.Contains(t, buf.String(), "op=save")
	assert.Contains(t, buf.String(), "op=list")
}

func TestChain_Order(t *testing.T) {
	var calls []string
	trace := func(name string) middleware.Middleware {
		return func(next ports.ProgramStore) ports.ProgramStore {
			return &tracingStore{ProgramStore: next, name: name, calls: &calls}
		}
	}

	store := middleware.Chain(memory.NewStore(), trace("outer"), trace("inner"))
	_, _ = store.List(context.Background())

	assert.Equal(t, []string{"outer", "inner"}, calls)
}

type tracingStore struct {
	ports.ProgramStore
	name  string
	calls *[]string
}

func (s *tracingStore) List(ctx context.Context) ([]string, error) {
	*s.calls = append(*s.calls, s.name)
	return s.ProgramStore.List(ctx)
}

func TestValidationMiddleware(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := middleware.NewValidationMiddleware()(underlying)

	err := store.Save(ctx, &domain.Program{Name: "no-tape", Rules: registry.Inverter().Rules})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProgram)
	assert.Contains(t, err.Error(), "tape is empty")

	_, err = underlying.Load(ctx, "no-tape")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound, "rejected programs never reach the store")

	// Warnings do not block a save: Halt as the initial state runs zero steps.
	warned := registry.Inverter()
	warned.InitialState = domain.StateHalt
	require.NoError(t, store.Save(ctx, warned))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := middleware.NewLoggingMiddleware(logger)(memory.NewStore())
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.NotContains(t, buf.String(), "level=WARN", "not found is an expected outcome")

	buf.Reset()
	err = store.Save(ctx, &domain.Program{Name: "../escape", Tape: domain.DefaultTape})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "store call failed")
}

func TestFallbackMiddleware(t *testing.T) {
	ctx := context.Background()
	store := middleware.NewFallbackMiddleware(registry.Builtin())(memory.NewStore())

	t.Run("Serves Builtins", func(t *testing.T) {
		p, err := store.Load(ctx, "busy-beaver")
		require.NoError(t, err)
		assert.Equal(t, "busy-beaver", p.Name)
		assert.Len(t, p.Rules, 6)
	})

	t.Run("Stored Program Shadows Builtin", func(t *testing.T) {
		custom := registry.Inverter()
		custom.Description = "custom"
		require.NoError(t, store.Save(ctx, custom))

		p, err := store.Load(ctx, "inverter")
		require.NoError(t, err)
		assert.Equal(t, "custom", p.Description)
	})

	t.Run("List Merges Names", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &domain.Program{Name: "mine", Tape: domain.DefaultTape}))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"busy-beaver", "classic", "inverter", "mine", "unary-increment"}, names)
	})

	t.Run("Unknown Name", func(t *testing.T) {
		_, err := store.Load(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})
}
