package domain

// DefaultInitialState is used when a program does not name one.
const DefaultInitialState = StateA

// DefaultTape is used when a program does not carry a tape.
var DefaultTape = []Symbol{SymbolZero, SymbolOne, SymbolZero, SymbolZero}

// Program bundles a rule list with the initial configuration of a machine.
type Program struct {
	Name         string   `json:"name" yaml:"name" mapstructure:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	InitialState State    `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	Tape         []Symbol `json:"tape" yaml:"tape" mapstructure:"tape"`
	Rules        []Rule   `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// Clone returns a deep copy so stores never share slices with callers.
func (p *Program) Clone() *Program {
	c := *p
	c.Tape = append([]Symbol(nil), p.Tape...)
	c.Rules = append([]Rule(nil), p.Rules...)
	return &c
}
