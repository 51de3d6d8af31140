package domain

import "fmt"

// Connection is an undirected edge between two distinct coordinates.
// A and B keep the order in which the edge was created, but {A, B} and {B, A}
// denote the same connection.
type Connection struct {
	A Coord `json:"a"`
	B Coord `json:"b"`
}

// Connect is shorthand for Connection{A: a, B: b}.
func Connect(a, b Coord) Connection {
	return Connection{A: a, B: b}
}

// Matches reports whether the connection joins a and b, in either direction.
func (c Connection) Matches(a, b Coord) bool {
	return (c.A == a && c.B == b) || (c.A == b && c.B == a)
}

// Equal reports whether two connections join the same endpoints.
func (c Connection) Equal(other Connection) bool {
	return c.Matches(other.A, other.B)
}

// SelfLoop reports whether both endpoints are the same point.
func (c Connection) SelfLoop() bool {
	return c.A == c.B
}

// Touches reports whether p is one of the endpoints.
func (c Connection) Touches(p Coord) bool {
	return c.A == p || c.B == p
}

func (c Connection) String() string {
	return fmt.Sprintf("%s to %s", c.A, c.B)
}
