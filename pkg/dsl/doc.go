/*
Package dsl provides a Go DSL for building Turing machine programs in code.

It is an alternative to rule files and YAML documents when a program is
generated, shared between tests or simply easier to read as Go.

Example usage:

	package main

	import (
		"github.com/aretw0/turing/pkg/domain"
		"github.com/aretw0/turing/pkg/dsl"
	)

	func main() {
		b := dsl.New("inverter").Tape(domain.SymbolZero, domain.SymbolOne)

		b.On(domain.StateA, domain.SymbolZero).Write(domain.SymbolOne).Right()
		b.On(domain.StateA, domain.SymbolOne).Write(domain.SymbolZero).Right()
		b.On(domain.StateA, domain.SymbolBlank).Left().Go(domain.StateHalt)

		program, err := b.Build()
		// ... pass program to turing.New().Run(ctx, program)
	}
*/
package dsl
