package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

// Store implements ports.ProgramStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Program
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store, optionally seeded with programs.
func NewStore(seed ...*domain.Program) *Store {
	s := &Store{
		data: make(map[string]*domain.Program),
	}
	for _, p := range seed {
		s.data[p.Name] = p.Clone()
	}
	return s
}

// Save keeps a copy of the program.
func (s *Store) Save(ctx context.Context, p *domain.Program) error {
	if err := ports.ValidateName(p.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.Name] = p.Clone()
	return nil
}

// Load returns a copy so callers can't mutate the stored program.
func (s *Store) Load(ctx context.Context, name string) (*domain.Program, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[name]
	if !ok {
		return nil, domain.ErrProgramNotFound
	}
	return p.Clone(), nil
}

// Delete removes the program.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
