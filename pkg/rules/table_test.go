package rules_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/rules"
	"github.com/stretchr/testify/assert"
)

func TestTable_Lookup(t *testing.T) {
	table := rules.New(
		domain.Rule{State: domain.StateA, Read: domain.SymbolZero, Write: domain.SymbolOne, Move: domain.MoveRight, Next: domain.StateB},
	)

	tr, ok := table.Lookup(domain.StateA, domain.SymbolZero)
	assert.True(t, ok)
	assert.Equal(t, domain.Transition{Write: domain.SymbolOne, Move: domain.MoveRight, Next: domain.StateB}, tr)

	_, ok = table.Lookup(domain.StateA, domain.SymbolOne)
	assert.False(t, ok, "missing pairs are absent, not an error")

	_, ok = table.Lookup(domain.StateHalt, domain.SymbolZero)
	assert.False(t, ok)
}

func TestTable_LastDuplicateWins(t *testing.T) {
	table := rules.New(
		domain.Rule{State: domain.StateA, Read: domain.SymbolZero, Write: domain.SymbolOne, Move: domain.MoveRight, Next: domain.StateB},
		domain.Rule{State: domain.StateA, Read: domain.SymbolZero, Write: domain.SymbolZero, Move: domain.MoveLeft, Next: domain.StateC},
	)

	assert.Equal(t, 1, table.Len())
	tr, ok := table.Lookup(domain.StateA, domain.SymbolZero)
	assert.True(t, ok)
	assert.Equal(t, domain.MoveLeft, tr.Move)
	assert.Equal(t, domain.StateC, tr.Next)
}

func TestTable_EmptyTable(t *testing.T) {
	table := rules.New()
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Rules())
	assert.Empty(t, table.States())
}

func TestTable_RulesAreOrdered(t *testing.T) {
	table := rules.New(
		domain.Rule{State: domain.StateB, Read: domain.SymbolOne, Next: domain.StateHalt},
		domain.Rule{State: domain.StateA, Read: domain.SymbolBlank, Next: domain.StateB},
		domain.Rule{State: domain.StateA, Read: domain.SymbolZero, Next: domain.StateA},
	)

	got := table.Rules()
	assert.Len(t, got, 3)
	assert.Equal(t, "A,0,0,L,A", got[0].String())
	assert.Equal(t, "A,Blank,0,L,B", got[1].String())
	assert.Equal(t, "B,1,0,L,Halt", got[2].String())
	assert.Equal(t, []domain.State{domain.StateA, domain.StateB}, table.States())
}
