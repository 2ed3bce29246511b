package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProgramStoreContract runs a suite of tests to verify that a ProgramStore
// implementation adheres to the defined interface contract.
func RunProgramStoreContract(t *testing.T, store ProgramStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	sample := func(n string) *domain.Program {
		return &domain.Program{
			Name:         n,
			Description:  "contract sample",
			InitialState: domain.StateB,
			Tape:         []domain.Symbol{domain.SymbolOne, domain.SymbolBlank, domain.SymbolZero},
			Rules: []domain.Rule{
				{State: domain.StateB, Read: domain.SymbolOne, Write: domain.SymbolZero, Move: domain.MoveLeft, Next: domain.StateC},
				{State: domain.StateC, Read: domain.SymbolBlank, Write: domain.SymbolOne, Move: domain.MoveRight, Next: domain.StateHalt},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		p := sample(name)
		require.NoError(t, store.Save(ctx, p), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, p, loaded)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(name)))

		first, err := store.Load(ctx, name)
		require.NoError(t, err)
		first.Tape[0] = domain.SymbolZero
		first.Rules = nil

		second, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, domain.SymbolOne, second.Tape[0])
		assert.Len(t, second.Rules, 2)
	})

	t.Run("Save replaces", func(t *testing.T) {
		p := sample(name)
		require.NoError(t, store.Save(ctx, p))
		p.Description = "replaced"
		require.NoError(t, store.Save(ctx, p))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "replaced", loaded.Description)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound)
	})

	t.Run("Invalid Name", func(t *testing.T) {
		err := store.Save(ctx, sample("../escape"))
		assert.ErrorIs(t, err, domain.ErrInvalidName)
		err = store.Save(ctx, sample(""))
		assert.ErrorIs(t, err, domain.ErrInvalidName)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sample(name)))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrProgramNotFound, "Load after Delete should return ErrProgramNotFound")

		assert.NoError(t, store.Delete(ctx, name), "deleting twice is fine")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-b"
		id2 := name + "-a"
		require.NoError(t, store.Save(ctx, sample(id1)))
		require.NoError(t, store.Save(ctx, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})
}
