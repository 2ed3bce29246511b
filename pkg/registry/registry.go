package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// ProgramFunction builds a fresh copy of a catalogued program.
type ProgramFunction func() *domain.Program

// Registry manages the catalogued programs.
type Registry struct {
	mu       sync.RWMutex
	programs map[string]ProgramFunction
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		programs: make(map[string]ProgramFunction),
	}
}

// Register adds a program to the registry.
// If a program with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn ProgramFunction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[name] = fn
}

// Get looks up a program by name and builds it.
// The returned program is named after the registry key.
func (r *Registry) Get(name string) (*domain.Program, error) {
	r.mu.RLock()
	fn, ok := r.programs[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, name)
	}

	p := fn()
	p.Name = name
	return p, nil
}

// Names returns the registered program names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.programs))
	for name := range r.programs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Programs builds every registered program in name order.
func (r *Registry) Programs() []*domain.Program {
	names := r.Names()
	out := make([]*domain.Program, 0, len(names))
	for _, name := range names {
		if p, err := r.Get(name); err == nil {
			out = append(out, p)
		}
	}
	return out
}
