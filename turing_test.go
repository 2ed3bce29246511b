package turing_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_RunStored(t *testing.T) {
	store := memory.NewStore(&domain.Program{
		Name:         "inverter",
		InitialState: domain.StateA,
		Tape:         []domain.Symbol{domain.SymbolOne},
		Rules:        inverter(),
	})

	var halts []domain.HaltEvent
	eng := turing.New(
		turing.WithStore(store),
		turing.WithLifecycleHooks(domain.LifecycleHooks{
			OnHalt: func(e domain.HaltEvent) { halts = append(halts, e) },
		}),
	)

	res, err := eng.RunStored(context.Background(), "inverter")
	require.NoError(t, err)
	assert.True(t, res.Halted)
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, []domain.Symbol{domain.SymbolZero, domain.SymbolBlank}, res.Snapshot.Tape)
	require.Len(t, halts, 1)
	assert.Equal(t, 2, halts[0].TapeLen)
}

func TestEngine_RunStored_NotFound(t *testing.T) {
	eng := turing.New()
	_, err := eng.RunStored(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
}

func TestEngine_MaxSteps(t *testing.T) {
	// Walks right forever.
	loop := &domain.Program{
		Name:         "loop",
		InitialState: domain.StateA,
		Tape:         []domain.Symbol{domain.SymbolBlank},
		Rules: []domain.Rule{
			{State: domain.StateA, Read: domain.SymbolBlank, Write: domain.SymbolBlank, Move: domain.MoveRight, Next: domain.StateA},
		},
	}

	eng := turing.New(turing.WithMaxSteps(50))
	res, err := eng.Run(context.Background(), loop)
	assert.ErrorIs(t, err, runner.ErrStepLimit)
	assert.False(t, res.Halted)
	assert.Equal(t, 50, res.Steps)
	assert.Len(t, res.Snapshot.Tape, 51)

	// Runner options override the engine bound.
	res, err = eng.Run(context.Background(), loop, runner.WithMaxSteps(10))
	assert.ErrorIs(t, err, runner.ErrStepLimit)
	assert.Equal(t, 10, res.Steps)
}

func TestEngine_Machine_ExtraHooks(t *testing.T) {
	var engineSteps, extraSteps int
	eng := turing.New(turing.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep: func(domain.StepEvent) { engineSteps++ },
	}))

	p := &domain.Program{Name: "inv", InitialState: domain.StateA, Tape: []domain.Symbol{domain.SymbolZero}, Rules: inverter()}
	m, err := eng.Machine(p, domain.LifecycleHooks{OnStep: func(domain.StepEvent) { extraSteps++ }})
	require.NoError(t, err)

	m.Run()
	assert.Equal(t, 2, engineSteps)
	assert.Equal(t, 2, extraSteps)
}

func TestEngine_Machine_EmptyTape(t *testing.T) {
	eng := turing.New()
	_, err := eng.Machine(&domain.Program{Name: "empty", Rules: inverter()})
	assert.ErrorIs(t, err, domain.ErrEmptyTape)
}

func TestNewMachine_NilTable(t *testing.T) {
	_, err := turing.NewMachine(nil, domain.StateA, domain.DefaultTape)
	assert.ErrorIs(t, err, turing.ErrNilTable)
}
