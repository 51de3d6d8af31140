package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/substrate"
	"github.com/aretw0/substrate/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// The map is safe for concurrent use; the designers it holds are not, so callers
// serialize access to each one through session.Manager.
type Store struct {
	data map[string]*substrate.Designer
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*substrate.Designer),
	}
}

// Create registers the designer under sessionID.
func (s *Store) Create(ctx context.Context, sessionID string, d *substrate.Designer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[sessionID]; exists {
		return domain.ErrSessionExists
	}
	s.data[sessionID] = d
	return nil
}

// Get returns the live designer for sessionID.
func (s *Store) Get(ctx context.Context, sessionID string) (*substrate.Designer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return d, nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.data, sessionID)
	return nil
}

// List returns active session IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	slices.Sort(sessions)
	return sessions, nil
}
