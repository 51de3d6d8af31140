package runtime

import (
	"fmt"

	"github.com/aretw0/substrate/pkg/domain"
)

// Machine is the interaction state machine of one editing session.
// It owns the node registry and the connection set; nothing else mutates them.
type Machine struct {
	space domain.Space
	nodes NodeRegistry
	conns ConnectionSet
	mode  domain.Mode
}

// NewMachine creates an empty session over the given space, resting in Idle.
func NewMachine(space domain.Space) *Machine {
	return &Machine{
		space: space,
		mode:  domain.Idle(),
	}
}

// Space returns the coordinate space the machine validates clicks against.
func (m *Machine) Space() domain.Space {
	return m.space
}

// Mode returns the current interaction state.
func (m *Machine) Mode() domain.Mode {
	return m.mode
}

// Arm switches to placement mode for role from any state.
// A pending endpoint is abandoned. It reports whether the mode changed; re-arming
// the role that is already armed is a no-op.
func (m *Machine) Arm(role domain.Role) (bool, error) {
	if !role.Valid() {
		return false, fmt.Errorf("%w: %v", domain.ErrUnknownRole, role)
	}
	next := domain.Armed(role)
	if m.mode == next {
		return false, nil
	}
	m.mode = next
	return true, nil
}

// Click consumes a grid click at c.
//
//   - PlacementArmed(r): toggles c in r's list, then Idle.
//   - Idle: c becomes the pending endpoint.
//   - EndpointSelected(a): c == a discards the selection; otherwise {a, c} is
//     toggled. Either way the machine returns to Idle.
//
// A coordinate outside the space is rejected with a *domain.CoordinateError and
// leaves the machine untouched, including an armed placement.
func (m *Machine) Click(c domain.Coord) (domain.Outcome, error) {
	if err := m.space.Validate(c); err != nil {
		return domain.Outcome{}, err
	}

	switch m.mode.Kind {
	case domain.ModePlacementArmed:
		role := m.mode.Role
		m.mode = domain.Idle()
		kind := domain.OutcomeNodeRemoved
		if m.nodes.Toggle(role, c) {
			kind = domain.OutcomeNodeAdded
		}
		return domain.Outcome{Kind: kind, Coord: c, Role: role}, nil

	case domain.ModeEndpointSelected:
		a := m.mode.Endpoint
		m.mode = domain.Idle()
		switch m.conns.Toggle(a, c) {
		case ToggleAdded:
			return domain.Outcome{Kind: domain.OutcomeConnectionAdded, Coord: c, Connection: domain.Connect(a, c)}, nil
		case ToggleRemoved:
			return domain.Outcome{Kind: domain.OutcomeConnectionRemoved, Coord: c, Connection: domain.Connect(a, c)}, nil
		default:
			return domain.Outcome{Kind: domain.OutcomeSelectionDiscarded, Coord: c}, nil
		}

	default:
		m.mode = domain.Selected(c)
		return domain.Outcome{Kind: domain.OutcomeEndpointSelected, Coord: c}, nil
	}
}

// Inputs returns the input nodes in insertion order.
func (m *Machine) Inputs() []domain.Coord {
	return m.nodes.Inputs()
}

// Outputs returns the output nodes in insertion order.
func (m *Machine) Outputs() []domain.Coord {
	return m.nodes.Outputs()
}

// Connections returns the connections in insertion order.
func (m *Machine) Connections() []domain.Connection {
	return m.conns.All()
}

// Hidden derives the hidden nodes from the current state.
func (m *Machine) Hidden() []domain.Coord {
	return DeriveHidden(m.conns.conns, m.nodes.inputs, m.nodes.outputs)
}

// IsSelected reports whether c is the pending first endpoint.
func (m *Machine) IsSelected(c domain.Coord) bool {
	p, ok := m.mode.PendingEndpoint()
	return ok && p == c
}

// ArmedRole returns the armed placement role, if any.
func (m *Machine) ArmedRole() (domain.Role, bool) {
	return m.mode.ArmedRole()
}

// Cell classifies a single point.
func (m *Machine) Cell(c domain.Coord) domain.Cell {
	cell := domain.Cell{
		Coord:    c,
		Input:    m.nodes.Contains(domain.RoleInput, c),
		Output:   m.nodes.Contains(domain.RoleOutput, c),
		Selected: m.IsSelected(c),
	}
	if !cell.Input && !cell.Output {
		for _, conn := range m.conns.conns {
			if conn.Touches(c) {
				cell.Hidden = true
				break
			}
		}
	}
	return cell
}

// Snapshot returns the full read model, with hidden nodes derived from the same
// state as the other collections.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		GridSize:    m.space.Size(),
		Inputs:      m.Inputs(),
		Outputs:     m.Outputs(),
		Hidden:      m.Hidden(),
		Connections: m.Connections(),
		Mode:        m.mode,
	}
}
