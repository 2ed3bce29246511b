package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func rule(s domain.State, read domain.Symbol, write domain.Symbol, move domain.Move, next domain.State) domain.Rule {
	return domain.Rule{State: s, Read: read, Write: write, Move: move, Next: next}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		rules    []domain.Rule
		opts     graph.Options
		contains []string
		excludes []string
	}{
		{
			name:  "State Shapes",
			rules: []domain.Rule{rule(domain.StateA, domain.SymbolZero, domain.SymbolOne, domain.MoveRight, domain.StateB), rule(domain.StateB, domain.SymbolOne, domain.SymbolOne, domain.MoveLeft, domain.StateHalt)},
			opts:  graph.Options{Initial: domain.StateA},
			contains: []string{
				"graph LR\n",
				`A(("A"))`,
				`B["B"]`,
				`Halt((("Halt")))`,
			},
		},
		{
			name:  "Edge Labels",
			rules: []domain.Rule{rule(domain.StateA, domain.SymbolBlank, domain.SymbolZero, domain.MoveLeft, domain.StateC)},
			opts:  graph.Options{Initial: domain.StateA},
			contains: []string{
				`A -- "Blank / 0,L" --> C`,
			},
		},
		{
			name: "Duplicate Keys Last Wins",
			rules: []domain.Rule{
				rule(domain.StateA, domain.SymbolZero, domain.SymbolOne, domain.MoveRight, domain.StateB),
				rule(domain.StateA, domain.SymbolZero, domain.SymbolZero, domain.MoveLeft, domain.StateC),
			},
			opts:     graph.Options{Initial: domain.StateA},
			contains: []string{`A -- "0 / 0,L" --> C`},
			excludes: []string{`--> B`},
		},
		{
			name:     "Initial Without Rules",
			rules:    nil,
			opts:     graph.Options{Initial: domain.StateC},
			contains: []string{`C(("C"))`},
		},
		{
			name:  "Implicit Halts",
			rules: []domain.Rule{rule(domain.StateA, domain.SymbolZero, domain.SymbolOne, domain.MoveRight, domain.StateA)},
			opts:  graph.Options{Initial: domain.StateA, ImplicitHalts: true},
			contains: []string{
				`A -. "1" .-> Halt`,
				`A -. "Blank" .-> Halt`,
			},
			excludes: []string{`A -. "0" .-> Halt`},
		},
		{
			name:  "Overlay",
			rules: []domain.Rule{rule(domain.StateA, domain.SymbolZero, domain.SymbolOne, domain.MoveRight, domain.StateB)},
			opts: graph.Options{Initial: domain.StateA, Overlay: &graph.Overlay{
				Visited: []domain.State{domain.StateA, domain.StateA, domain.StateB},
				Current: domain.StateB,
			}},
			contains: []string{
				"classDef visited",
				"class A visited;",
				"class B current;",
			},
			excludes: []string{"class B visited;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.rules, tt.opts)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestGenerateMermaid_Overlay_DedupesVisited(t *testing.T) {
	got := graph.GenerateMermaid(nil, graph.Options{Initial: domain.StateA, Overlay: &graph.Overlay{
		Visited: []domain.State{domain.StateB, domain.StateB},
		Current: domain.StateA,
	}})
	assert.Equal(t, 1, strings.Count(got, "class B visited;"))
}

func TestRuleTable(t *testing.T) {
	got := graph.RuleTable([]domain.Rule{rule(domain.StateA, domain.SymbolZero, domain.SymbolOne, domain.MoveRight, domain.StateHalt)})
	assert.Equal(t, "| State | Read | Write | Move | Next |\n|-------|------|-------|------|------|\n| A | 0 | 1 | R | Halt |\n", got)
}

func TestDescribe(t *testing.T) {
	p := &domain.Program{
		Name:         "flip",
		Description:  "Flips one bit.",
		InitialState: domain.StateA,
		Tape:         []domain.Symbol{domain.SymbolZero, domain.SymbolBlank},
		Rules:        []domain.Rule{rule(domain.StateA, domain.SymbolZero, domain.SymbolOne, domain.MoveRight, domain.StateHalt)},
	}
	got := graph.Describe(p, "state B is unreachable")

	assert.True(t, strings.HasPrefix(got, "# flip\n\nFlips one bit.\n"))
	assert.Contains(t, got, "**Tape:** `0_` (2 cells)")
	assert.Contains(t, got, "## Rules")
	assert.Contains(t, got, "| A | 0 | 1 | R | Halt |")
	assert.Contains(t, got, "## Notes\n\n- state B is unreachable\n")
}
