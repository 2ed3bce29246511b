// Package rules provides the immutable rule table consulted by the machine.
package rules

import (
	"sort"

	"github.com/aretw0/turing/pkg/domain"
)

// Table maps (state, symbol) keys to transitions.
// It is never mutated after New returns, so one Table can back any number
// of machines.
type Table struct {
	entries map[domain.Key]domain.Transition
}

// New builds a table from rule rows. No completeness check is made: pairs
// that are missing simply halt the machine. When a key appears more than
// once, the later row wins.
func New(entries ...domain.Rule) *Table {
	m := make(map[domain.Key]domain.Transition, len(entries))
	for _, r := range entries {
		m[r.Key()] = r.Transition()
	}
	return &Table{entries: m}
}

// Lookup returns the transition for (state, symbol), or false when the pair
// has no rule.
func (t *Table) Lookup(state domain.State, symbol domain.Symbol) (domain.Transition, bool) {
	tr, ok := t.entries[domain.Key{State: state, Read: symbol}]
	return tr, ok
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Rules returns the table contents as rows, ordered by state then symbol.
func (t *Table) Rules() []domain.Rule {
	out := make([]domain.Rule, 0, len(t.entries))
	for k, tr := range t.entries {
		out = append(out, domain.Rule{
			State: k.State,
			Read:  k.Read,
			Write: tr.Write,
			Move:  tr.Move,
			Next:  tr.Next,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Read < out[j].Read
	})
	return out
}

// States returns the distinct source states that have at least one rule.
func (t *Table) States() []domain.State {
	seen := make(map[domain.State]bool)
	var out []domain.State
	for k := range t.entries {
		if !seen[k.State] {
			seen[k.State] = true
			out = append(out, k.State)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
