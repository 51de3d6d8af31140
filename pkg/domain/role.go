package domain

import (
	"fmt"
	"strings"
)

// Role is the explicit classification of a registered node.
// Hidden is not a Role: hidden nodes are derived, never registered.
type Role int

// The zero Role means "no role" and is not Valid.
const (
	RoleInput Role = iota + 1
	RoleOutput
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleInput, RoleOutput}

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	return r == RoleInput || r == RoleOutput
}

// ParseRole converts a role name ("input", "output", case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "input", "in":
		return RoleInput, nil
	case "output", "out":
		return RoleOutput, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
