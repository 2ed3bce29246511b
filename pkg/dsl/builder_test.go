package dsl_test

import (
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
	"github.com/aretw0/turing/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Inverter(t *testing.T) {
	b := dsl.New("inverter").
		Describe("Flips every bit, then halts.").
		Tape(domain.SymbolZero, domain.SymbolOne, domain.SymbolOne)

	b.On(domain.StateA, domain.SymbolZero).Write(domain.SymbolOne).Right()
	b.On(domain.StateA, domain.SymbolOne).Write(domain.SymbolZero).Right()
	b.On(domain.StateA, domain.SymbolBlank).Left().Halt()

	p, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "inverter", p.Name)
	assert.Equal(t, "Flips every bit, then halts.", p.Description)
	assert.Equal(t, domain.StateA, p.InitialState)
	require.Len(t, p.Rules, 3)
	assert.Equal(t, "A,0,1,R,A", p.Rules[0].String())
	assert.Equal(t, "A,Blank,Blank,L,Halt", p.Rules[2].String())

	m, err := runtime.NewMachine(rules.New(p.Rules...), p.InitialState, p.Tape)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Run())
	assert.Equal(t, []domain.Symbol{domain.SymbolOne, domain.SymbolZero, domain.SymbolZero, domain.SymbolBlank}, m.Tape())
}

func TestBuilder_Defaults(t *testing.T) {
	b := dsl.New("defaults")
	b.On(domain.StateB, domain.SymbolOne)

	p, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultInitialState, p.InitialState)
	assert.Equal(t, domain.DefaultTape, p.Tape)
	assert.Equal(t, domain.Rule{
		State: domain.StateB,
		Read:  domain.SymbolOne,
		Write: domain.SymbolOne,
		Move:  domain.MoveRight,
		Next:  domain.StateB,
	}, p.Rules[0])
}

func TestBuilder_BuildReturnsIndependentCopies(t *testing.T) {
	b := dsl.New("copy").Tape(domain.SymbolZero)
	b.On(domain.StateA, domain.SymbolZero).Halt()

	first, err := b.Build()
	require.NoError(t, err)
	first.Tape[0] = domain.SymbolOne
	first.Rules[0].Next = domain.StateC

	second, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.SymbolZero, second.Tape[0])
	assert.Equal(t, domain.StateHalt, second.Rules[0].Next)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("Empty Tape", func(t *testing.T) {
		_, err := dsl.New("empty").Tape().Build()
		assert.ErrorIs(t, err, domain.ErrEmptyTape)
	})

	t.Run("Invalid Initial State", func(t *testing.T) {
		_, err := dsl.New("bad").Initial(domain.State(42)).Build()
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})

	t.Run("Invalid Tape Symbol", func(t *testing.T) {
		_, err := dsl.New("bad").Tape(domain.SymbolZero, domain.Symbol(9)).Build()
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Contains(t, err.Error(), "tape cell 1")
	})

	t.Run("Collects Every Bad Rule", func(t *testing.T) {
		b := dsl.New("bad")
		b.On(domain.StateA, domain.SymbolZero).Write(domain.Symbol(7))
		b.On(domain.StateA, domain.SymbolOne).Halt()
		b.On(domain.StateB, domain.SymbolZero).Move(domain.Move(3))

		_, err := b.Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Contains(t, err.Error(), "rule 1: write 7")
		assert.Contains(t, err.Error(), "rule 3: move 3")
		assert.NotContains(t, err.Error(), "rule 2")
	})

	t.Run("MustBuild Panics", func(t *testing.T) {
		assert.Panics(t, func() { dsl.New("empty").Tape().MustBuild() })
	})
}

func TestRuleBuilder_Build(t *testing.T) {
	b := dsl.New("single")
	r := b.On(domain.StateC, domain.SymbolBlank).Write(domain.SymbolOne).Left().Go(domain.StateA)

	assert.Equal(t, "C,Blank,1,L,A", r.Build().String())
}
