package registry

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/dsl"
)

const (
	A     = domain.StateA
	B     = domain.StateB
	C     = domain.StateC
	Zero  = domain.SymbolZero
	One   = domain.SymbolOne
	Blank = domain.SymbolBlank
)

// Builtin returns a registry holding the programs shipped with turing.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("classic", Classic)
	r.Register("busy-beaver", BusyBeaver)
	r.Register("inverter", Inverter)
	r.Register("unary-increment", UnaryIncrement)
	return r
}

// Classic is the three-state demo machine over the default tape 0,1,0,0.
// It walks right rewriting the tape and halts on the first Blank it reaches
// in state C.
func Classic() *domain.Program {
	b := dsl.New("classic").Describe("Three-state demo machine on the default tape.")
	b.On(A, Zero).Write(One).Right().Go(B)
	b.On(A, One).Write(Zero).Right().Go(C)
	b.On(B, Zero).Write(One).Right().Go(C)
	b.On(B, One).Write(One).Right().Go(A)
	b.On(C, Zero).Write(Zero).Right().Go(A)
	b.On(C, One).Write(One).Right().Go(B)
	b.On(C, Blank).Write(Blank).Left().Halt()
	return b.MustBuild()
}

// BusyBeaver is the three-state, two-symbol busy beaver. Started on a blank
// cell it halts after 14 steps leaving six 1s on the tape.
func BusyBeaver() *domain.Program {
	b := dsl.New("busy-beaver").
		Describe("Three-state, two-symbol busy beaver started on a blank cell.").
		Tape(Blank)
	b.On(A, Blank).Write(One).Right().Go(B)
	b.On(A, One).Write(One).Right().Halt()
	b.On(B, Blank).Write(Blank).Right().Go(C)
	b.On(B, One).Write(One).Right().Go(B)
	b.On(C, Blank).Write(One).Left().Go(C)
	b.On(C, One).Write(One).Left().Go(A)
	return b.MustBuild()
}

// Inverter flips every bit of the default tape and halts past its right end.
func Inverter() *domain.Program {
	b := dsl.New("inverter").Describe("Flips every bit, then halts.")
	b.On(A, Zero).Write(One).Right()
	b.On(A, One).Write(Zero).Right()
	b.On(A, Blank).Left().Halt()
	return b.MustBuild()
}

// UnaryIncrement appends a 1 to a unary number.
func UnaryIncrement() *domain.Program {
	b := dsl.New("unary-increment").
		Describe("Adds one to a unary number.").
		Tape(One, One, One)
	b.On(A, One).Right()
	b.On(A, Blank).Write(One).Left().Halt()
	return b.MustBuild()
}
