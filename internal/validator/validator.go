package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/loader"
	"github.com/aretw0/turing/pkg/rules"
)

// Severity ranks an issue found in a program.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	return string(i.Severity) + ": " + i.Message
}

// Report collects the issues found by Validate.
type Report struct {
	Issues []Issue
}

func (r *Report) add(sev Severity, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of issues with the given severity.
func (r Report) Count(sev Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// Err returns an error listing every error-level issue, or nil.
func (r Report) Err() error {
	var errs []string
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			errs = append(errs, i.Message)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
}

// Validate checks a program for problems a machine would not report:
// it never fails on a missing rule, it just halts.
//
// The walk starts from the initial state and follows next states, the same
// way a crawler follows links, to find rules that can never fire.
func Validate(p *domain.Program) Report {
	var r Report

	if len(p.Tape) == 0 {
		r.add(SeverityError, "tape is empty")
	}
	if !p.InitialState.Valid() {
		r.add(SeverityError, "initial state %s is not a known state", p.InitialState)
	}
	for i, rule := range p.Rules {
		if !rule.State.Valid() || !rule.Read.Valid() || !rule.Write.Valid() || !rule.Move.Valid() || !rule.Next.Valid() {
			r.add(SeverityError, "rule %d has an invalid field: %s", i+1, rule)
		}
	}
	if r.Count(SeverityError) > 0 {
		return r
	}

	for _, k := range loader.Duplicates(p.Rules) {
		r.add(SeverityWarning, "rule (%s, %s) is defined more than once; the last definition wins", k.State, k.Read)
	}

	for _, rule := range p.Rules {
		if rule.State.IsHalt() {
			r.add(SeverityWarning, "rule %s starts from Halt and is never consulted", rule)
		}
	}

	// Edges come from the effective table: a shadowed duplicate never fires.
	outgoing := make(map[domain.State][]domain.State)
	hasRules := make(map[domain.State]bool)
	for _, rule := range rules.New(p.Rules...).Rules() {
		if rule.State.IsHalt() {
			continue
		}
		hasRules[rule.State] = true
		outgoing[rule.State] = append(outgoing[rule.State], rule.Next)
	}

	if p.InitialState.IsHalt() {
		r.add(SeverityWarning, "initial state is Halt; the machine performs zero steps")
		return r
	}
	if len(p.Rules) == 0 {
		r.add(SeverityInfo, "program has no rules; the machine halts on the first step")
		return r
	}

	visited := map[domain.State]bool{}
	queue := []domain.State{p.InitialState}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current] || current.IsHalt() {
			continue
		}
		visited[current] = true

		if !hasRules[current] {
			r.add(SeverityInfo, "state %s has no rules; entering it halts the machine", current)
		}
		for _, next := range outgoing[current] {
			if !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	for _, s := range domain.States {
		if hasRules[s] && !visited[s] {
			r.add(SeverityWarning, "state %s is unreachable from %s", s, p.InitialState)
		}
	}

	return r
}
