package domain

// Transition is what a rule does once it matches: write a symbol,
// move the head, enter the next state.
type Transition struct {
	Write Symbol `json:"write" yaml:"write"`
	Move  Move   `json:"move" yaml:"move"`
	Next  State  `json:"next" yaml:"next"`
}

// Key identifies a rule: the control state and the symbol under the head.
type Key struct {
	State State
	Read  Symbol
}

// Rule is one row of a rule file: a lookup key plus its transition.
type Rule struct {
	State State  `json:"state" yaml:"state" mapstructure:"state"`
	Read  Symbol `json:"read" yaml:"read" mapstructure:"read"`
	Write Symbol `json:"write" yaml:"write" mapstructure:"write"`
	Move  Move   `json:"move" yaml:"move" mapstructure:"move"`
	Next  State  `json:"next" yaml:"next" mapstructure:"next"`
}

// Key returns the (state, symbol) pair the rule is looked up by.
func (r Rule) Key() Key {
	return Key{State: r.State, Read: r.Read}
}

// Transition returns the action part of the rule.
func (r Rule) Transition() Transition {
	return Transition{Write: r.Write, Move: r.Move, Next: r.Next}
}

// String renders the rule in the line format of rule files.
func (r Rule) String() string {
	return r.State.String() + "," + r.Read.String() + "," + r.Write.String() + "," + r.Move.String() + "," + r.Next.String()
}
