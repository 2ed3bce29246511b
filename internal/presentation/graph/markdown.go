package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// RuleTable renders rules as a Markdown table in the order given.
func RuleTable(list []domain.Rule) string {
	var sb strings.Builder
	sb.WriteString("| State | Read | Write | Move | Next |\n")
	sb.WriteString("|-------|------|-------|------|------|\n")
	for _, r := range list {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", r.State, r.Read, r.Write, r.Move, r.Next)
	}
	return sb.String()
}

// Describe renders a program as a Markdown document: header, initial
// configuration and rule table. Notes are appended as a bullet list.
func Describe(p *domain.Program, notes ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", p.Description)
	}
	fmt.Fprintf(&sb, "- **Initial state:** `%s`\n", p.InitialState)
	fmt.Fprintf(&sb, "- **Tape:** `%s` (%d cells)\n", domain.FormatTape(p.Tape), len(p.Tape))
	fmt.Fprintf(&sb, "- **Rules:** %d\n\n", len(p.Rules))

	if len(p.Rules) > 0 {
		sb.WriteString("## Rules\n\n")
		sb.WriteString(RuleTable(p.Rules))
	}

	if len(notes) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&sb, "- %s\n", n)
		}
	}
	return sb.String()
}
