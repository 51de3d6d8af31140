package ports

import (
	"context"

	"github.com/aretw0/substrate"
)

// SessionStore holds live editing sessions.
// Designers are stored by pointer; the store never copies or serializes them.
type SessionStore interface {
	// Create registers a new session.
	// Returns domain.ErrSessionExists if the ID is taken.
	Create(ctx context.Context, sessionID string, d *substrate.Designer) error

	// Get retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Get(ctx context.Context, sessionID string) (*substrate.Designer, error)

	// Delete removes the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all sessions, sorted.
	List(ctx context.Context) ([]string, error)
}
