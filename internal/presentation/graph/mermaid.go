package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/rules"
)

// Overlay contains run data to highlight on the graph.
type Overlay struct {
	Visited []domain.State
	Current domain.State
}

// Options controls GenerateMermaid.
type Options struct {
	// Initial is drawn as a circle.
	Initial domain.State

	// ImplicitHalts adds a dotted edge to Halt for every (state, symbol)
	// pair without a rule.
	ImplicitHalts bool

	Overlay *Overlay
}

// GenerateMermaid produces a Mermaid flowchart of the rule list.
// Duplicate keys are resolved the way a machine resolves them (last wins).
// Shapes:
// - Initial state: ((Circle))
// - Halt: (((Double circle)))
// - Other states: [Rectangle]
// Each edge is labelled "read / write,move".
func GenerateMermaid(list []domain.Rule, opts Options) string {
	table := rules.New(list...)

	states := []domain.State{opts.Initial}
	for _, r := range table.Rules() {
		states = append(states, r.State, r.Next)
	}
	slices.Sort(states)
	states = slices.Compact(states)

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range states {
		opener, closer := "[", "]"
		switch {
		case s == opts.Initial:
			opener, closer = "((", "))"
		case s.IsHalt():
			opener, closer = "(((", ")))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", s, opener, s, closer)
	}

	for _, r := range table.Rules() {
		fmt.Fprintf(&sb, "    %s -- \"%s / %s,%s\" --> %s\n", r.State, r.Read, r.Write, r.Move, r.Next)
	}

	if opts.ImplicitHalts {
		for _, s := range states {
			if s.IsHalt() {
				continue
			}
			for _, sym := range domain.Symbols {
				if _, ok := table.Lookup(s, sym); !ok {
					fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", s, sym, domain.StateHalt)
				}
			}
		}
	}

	if o := opts.Overlay; o != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[domain.State]bool)
		for _, s := range o.Visited {
			if !seen[s] && s != o.Current {
				seen[s] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", s)
			}
		}
		fmt.Fprintf(&sb, "    class %s current;\n", o.Current)
	}

	return sb.String()
}
