package turing

import (
	"log/slog"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/rules"
)

// Machine is a single Turing machine over a shared rule table.
type Machine = runtime.Machine

// MachineOption configures a Machine.
type MachineOption = runtime.MachineOption

// ErrNilTable is returned by NewMachine when no rule table is given.
var ErrNilTable = runtime.ErrNilTable

// NewMachine builds a machine at position 0 over a copy of tape.
func NewMachine(table *rules.Table, initial domain.State, tape []domain.Symbol, opts ...MachineOption) (*Machine, error) {
	return runtime.NewMachine(table, initial, tape, opts...)
}

// MachineHooks registers observers on a single machine.
func MachineHooks(hooks domain.LifecycleHooks) MachineOption {
	return runtime.WithLifecycleHooks(hooks)
}

// MachineLogger logs every step at debug level.
func MachineLogger(logger *slog.Logger) MachineOption {
	return runtime.WithLogger(logger)
}
