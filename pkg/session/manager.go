package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/google/uuid"
)

// MachineFactory builds the machine a new session drives.
type MachineFactory func(p *domain.Program) (*runtime.Machine, error)

// Info describes a session without exposing its machine.
type Info struct {
	ID       string          `json:"id"`
	Program  string          `json:"program"`
	Created  time.Time       `json:"created"`
	LastUsed time.Time       `json:"last_used"`
	Halted   bool            `json:"halted"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

type entry struct {
	program  string
	machine  *runtime.Machine
	created  time.Time
	lastUsed time.Time
}

func (e *entry) info(id string) Info {
	return Info{
		ID:       id,
		Program:  e.program,
		Created:  e.created,
		LastUsed: e.lastUsed,
		Halted:   e.machine.Halted(),
		Snapshot: e.machine.Snapshot(),
	}
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	factory MachineFactory

	mu       sync.Mutex            // Guards locks and sessions
	locks    map[string]*lockEntry // Map of active locks
	sessions map[string]*entry

	idleTimeout time.Duration
	maxSessions int
	now         func() time.Time
	logger      *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIdleTimeout expires sessions unused for longer than d. Zero keeps them
// until deleted.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.idleTimeout = d
	}
}

// WithMaxSessions caps the number of live sessions. Zero means no cap.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		m.maxSessions = n
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a new Session Manager building machines with factory.
func NewManager(factory MachineFactory, opts ...Option) *Manager {
	m := &Manager{
		factory:  factory,
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]*entry),
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.locks[id]
	if !exists {
		e = &lockEntry{}
		m.locks[id] = e
	}
	e.refs++
	return e
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.locks[id]
	if !exists {
		return
	}

	e.refs--
	if e.refs <= 0 {
		delete(m.locks, id)
	}
}

// withLock runs fn with exclusive access to the session.
func (m *Manager) withLock(ctx context.Context, id string, fn func(*entry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := m.acquire(id)
	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		m.release(id)
	}()

	m.mu.Lock()
	e, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return fn(e)
}

// Start builds a machine for p and registers a new session for it.
func (m *Manager) Start(ctx context.Context, p *domain.Program) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	machine, err := m.factory(p)
	if err != nil {
		return Info{}, err
	}

	m.Prune()

	now := m.now()
	id := uuid.NewString()
	e := &entry{program: p.Name, machine: machine, created: now, lastUsed: now}
	// Snapshot before publishing: once in m.sessions the entry belongs to Step.
	info := e.info(id)

	m.mu.Lock()
	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		m.mu.Unlock()
		return Info{}, ErrTooManySessions
	}
	m.sessions[id] = e
	m.mu.Unlock()

	m.logger.Debug("session started", "session_id", id, "program", p.Name)
	return info, nil
}

// Step advances the session by up to n steps, stopping early once the
// machine halts. It returns the executed steps and the session afterwards.
// Stepping a halted session returns no steps.
func (m *Manager) Step(ctx context.Context, id string, n int) ([]domain.StepResult, Info, error) {
	if n < 1 {
		n = 1
	}

	var (
		results []domain.StepResult
		info    Info
	)
	err := m.withLock(ctx, id, func(e *entry) error {
		for i := 0; i < n && !e.machine.Halted(); i++ {
			if err := ctx.Err(); err != nil {
				break
			}
			res := e.machine.Step()
			results = append(results, res)
			if res.Outcome == domain.OutcomeHalted {
				e.machine.NotifyHalt()
			}
		}
		e.lastUsed = m.now()
		info = e.info(id)
		return nil
	})
	return results, info, err
}

// Get returns the current view of a session.
func (m *Manager) Get(ctx context.Context, id string) (Info, error) {
	var info Info
	err := m.withLock(ctx, id, func(e *entry) error {
		info = e.info(id)
		return nil
	})
	return info, err
}

// Delete ends a session. Deleting an unknown session is not an error.
func (m *Manager) Delete(ctx context.Context, id string) error {
	err := m.withLock(ctx, id, func(*entry) error {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil
	})
	if err != nil && !isNotFound(err) {
		return err
	}
	m.logger.Debug("session deleted", "session_id", id)
	return nil
}

// List returns the live session ids in sorted order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Prune removes sessions idle for longer than the idle timeout and returns
// how many were removed. Sessions in use are skipped.
func (m *Manager) Prune() int {
	if m.idleTimeout <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, e := range m.sessions {
		if _, busy := m.locks[id]; busy {
			continue
		}
		if e.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Debug("sessions expired", "count", removed)
	}
	return removed
}

// Run prunes expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Prune()
		}
	}
}
