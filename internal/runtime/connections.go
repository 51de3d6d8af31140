package runtime

import (
	"slices"

	"github.com/aretw0/substrate/pkg/domain"
)

// ToggleResult reports what ConnectionSet.Toggle did.
type ToggleResult int

const (
	ToggleRejected ToggleResult = iota // Self-connection, nothing changed
	ToggleAdded
	ToggleRemoved
)

func (t ToggleResult) String() string {
	switch t {
	case ToggleAdded:
		return "added"
	case ToggleRemoved:
		return "removed"
	default:
		return "rejected"
	}
}

// ConnectionSet is the ordered collection of undirected connections.
// It never holds a self-loop and never holds the same pair twice in either order.
type ConnectionSet struct {
	conns []domain.Connection
}

// index returns the position of {a, b} in either storage order, or -1.
func (s *ConnectionSet) index(a, b domain.Coord) int {
	for i, c := range s.conns {
		if c.Matches(a, b) {
			return i
		}
	}
	return -1
}

// Toggle removes {a, b} if it exists in either direction, otherwise appends (a, b).
// a == b is rejected without changes.
func (s *ConnectionSet) Toggle(a, b domain.Coord) ToggleResult {
	if a == b {
		return ToggleRejected
	}
	if i := s.index(a, b); i >= 0 {
		s.conns = slices.Delete(s.conns, i, i+1)
		return ToggleRemoved
	}
	s.conns = append(s.conns, domain.Connect(a, b))
	return ToggleAdded
}

// Contains reports whether {a, b} exists, regardless of direction.
func (s *ConnectionSet) Contains(a, b domain.Coord) bool {
	return s.index(a, b) >= 0
}

// All returns a copy of the connections in insertion order.
func (s *ConnectionSet) All() []domain.Connection {
	return append([]domain.Connection{}, s.conns...)
}

// Len returns the number of connections.
func (s *ConnectionSet) Len() int {
	return len(s.conns)
}
