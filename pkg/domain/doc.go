/*
Package domain contains the core types of the Turing machine engine.

It defines the closed enumerations the machine works with (State, Symbol, Move),
the rule and transition values, the double-ended Tape, and the events emitted
to observers. This package is kept pure and free of I/O.

# Key Entities

  - State: control state (A, B, C) or the terminal Halt.
  - Symbol: tape cell content (0, 1, Blank).
  - Rule / Transition: (state, symbol) -> (write, move, next).
  - Tape: two stacks joined at an origin, growable at both ends.
  - Program: a named rule list plus initial state and tape.
*/
package domain
