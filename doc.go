/*
Package turing is a deterministic single-tape Turing machine engine.

A machine reads the symbol under its head, looks up the (state, symbol) pair in a
rule table, writes a symbol, moves the head one cell and enters the next state.
The tape starts from a finite sequence and grows with Blank cells whenever the
head walks off either end. A pair with no rule halts the machine.

# Concept

The rule table (package rules) is immutable and can be shared by many machines.
A Machine owns its tape, head and control state and is driven one Step at a time.
Bounded execution, output and cancellation live outside the core, in package runner.

# Usage

	table := rules.New(
		domain.Rule{State: domain.StateA, Read: domain.SymbolZero, Write: domain.SymbolOne, Move: domain.MoveRight, Next: domain.StateB},
		domain.Rule{State: domain.StateB, Read: domain.SymbolOne, Write: domain.SymbolZero, Move: domain.MoveLeft, Next: domain.StateHalt},
	)

	m, err := turing.NewMachine(table, domain.StateA, []domain.Symbol{domain.SymbolZero, domain.SymbolOne})
	if err != nil {
		log.Fatal(err)
	}
	steps := m.Run()

Programs (rules plus initial state and tape) are loaded with package loader and can be
kept in any ports.ProgramStore. The Engine ties a store, observers and a step limit together:

	eng := turing.New(turing.WithMaxSteps(10_000))
	res, err := eng.Run(ctx, program, runner.WithHandler(runner.NewTextHandler(os.Stdout)))
*/
package turing
