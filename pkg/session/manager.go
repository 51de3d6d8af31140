package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/internal/logging"
	"github.com/aretw0/substrate/pkg/domain"
	"github.com/aretw0/substrate/pkg/ports"
	"github.com/google/uuid"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Hooks are notified when sessions come and go.
// Either hook may be nil. They run while the session lock is held.
type Hooks struct {
	OnStart  func(ctx context.Context, sessionID string)
	OnDelete func(ctx context.Context, sessionID string)
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	designerOpts []substrate.Option
	hooks        Hooks
	newID        func() string
	logger       *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithDesignerOptions sets the options applied to every new Designer.
func WithDesignerOptions(opts ...substrate.Option) Option {
	return func(m *Manager) {
		m.designerOpts = append(m.designerOpts, opts...)
	}
}

// WithHooks registers session lifecycle hooks.
func WithHooks(hooks Hooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithIDGenerator replaces the UUID generator used when Start gets an empty ID.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		m.newID = fn
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager over the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		newID:  uuid.NewString,
		logger: logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Start creates a new empty session and returns its ID.
// An empty sessionID is replaced by a generated UUID.
// Returns domain.ErrSessionExists if the ID is taken.
func (m *Manager) Start(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		sessionID = m.newID()
	}

	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		opts := append([]substrate.Option{}, m.designerOpts...)
		opts = append(opts, substrate.WithName(sessionID))
		d, err := substrate.New(opts...)
		if err != nil {
			return fmt.Errorf("failed to create designer: %w", err)
		}
		if err := m.store.Create(ctx, sessionID, d); err != nil {
			return err
		}
		m.logger.Info("Session started", "session_id", sessionID, "grid_size", d.Space().Size())
		if m.hooks.OnStart != nil {
			m.hooks.OnStart(ctx, sessionID)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Do runs fn against the session's designer while holding its lock.
// fn may mutate the designer; it must not retain it after returning.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *substrate.Designer) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		d, err := m.store.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, d)
	})
}

// View returns a consistent snapshot of the session.
func (m *Manager) View(ctx context.Context, sessionID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := m.Do(ctx, sessionID, func(_ context.Context, d *substrate.Designer) error {
		snap = d.Snapshot()
		return nil
	})
	return snap, err
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return err
		}
		m.logger.Info("Session deleted", "session_id", sessionID)
		if m.hooks.OnDelete != nil {
			m.hooks.OnDelete(ctx, sessionID)
		}
		return nil
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
// It gives up with ctx.Err() if ctx is already done once the lock is held.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
