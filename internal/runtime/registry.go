package runtime

import (
	"slices"

	"github.com/aretw0/substrate/pkg/domain"
)

// NodeRegistry holds the explicitly registered nodes, one ordered list per role.
// A coordinate may be registered under both roles at once.
type NodeRegistry struct {
	inputs  []domain.Coord
	outputs []domain.Coord
}

func (r *NodeRegistry) list(role domain.Role) *[]domain.Coord {
	switch role {
	case domain.RoleInput:
		return &r.inputs
	case domain.RoleOutput:
		return &r.outputs
	default:
		return nil
	}
}

// Toggle removes c from the role's list if present, otherwise appends it.
// It reports whether c was added. Unknown roles are ignored.
func (r *NodeRegistry) Toggle(role domain.Role, c domain.Coord) bool {
	list := r.list(role)
	if list == nil {
		return false
	}
	if i := slices.Index(*list, c); i >= 0 {
		*list = slices.Delete(*list, i, i+1)
		return false
	}
	*list = append(*list, c)
	return true
}

// Contains reports whether c is registered under role.
func (r *NodeRegistry) Contains(role domain.Role, c domain.Coord) bool {
	list := r.list(role)
	return list != nil && slices.Contains(*list, c)
}

// Registered reports whether c is an input or an output.
func (r *NodeRegistry) Registered(c domain.Coord) bool {
	return slices.Contains(r.inputs, c) || slices.Contains(r.outputs, c)
}

// Inputs returns a copy of the input list in insertion order.
func (r *NodeRegistry) Inputs() []domain.Coord {
	return append([]domain.Coord{}, r.inputs...)
}

// Outputs returns a copy of the output list in insertion order.
func (r *NodeRegistry) Outputs() []domain.Coord {
	return append([]domain.Coord{}, r.outputs...)
}
