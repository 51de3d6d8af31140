package domain

import (
	"encoding/json"
	"fmt"
)

// ModeKind names the state of the interaction machine.
type ModeKind string

const (
	ModeIdle             ModeKind = "idle"              // No pending selection or placement
	ModePlacementArmed   ModeKind = "placement_armed"   // Next click places/removes a node of Role
	ModeEndpointSelected ModeKind = "endpoint_selected" // Endpoint holds the first end of a pending connection
)

// Mode is the current interaction state.
// Role is meaningful only when Kind is ModePlacementArmed and Endpoint only when Kind
// is ModeEndpointSelected. Build modes with Idle, Armed and Selected so that unused
// fields stay zero and modes can be compared with ==.
type Mode struct {
	Kind     ModeKind
	Role     Role
	Endpoint Coord
}

// Idle returns the resting mode.
func Idle() Mode {
	return Mode{Kind: ModeIdle}
}

// Armed returns the mode in which the next click toggles a node of role r.
func Armed(r Role) Mode {
	return Mode{Kind: ModePlacementArmed, Role: r}
}

// Selected returns the mode in which c is the pending first endpoint.
func Selected(c Coord) Mode {
	return Mode{Kind: ModeEndpointSelected, Endpoint: c}
}

// ArmedRole returns the armed placement role, if any.
func (m Mode) ArmedRole() (Role, bool) {
	if m.Kind != ModePlacementArmed {
		return 0, false
	}
	return m.Role, true
}

// PendingEndpoint returns the selected first endpoint, if any.
func (m Mode) PendingEndpoint() (Coord, bool) {
	if m.Kind != ModeEndpointSelected {
		return Coord{}, false
	}
	return m.Endpoint, true
}

func (m Mode) String() string {
	switch m.Kind {
	case ModePlacementArmed:
		return fmt.Sprintf("%s(%s)", m.Kind, m.Role)
	case ModeEndpointSelected:
		return fmt.Sprintf("%s%s", m.Kind, m.Endpoint)
	default:
		return string(ModeIdle)
	}
}

type modeJSON struct {
	Kind     ModeKind `json:"kind"`
	Role     *Role    `json:"role,omitempty"`
	Endpoint *Coord   `json:"endpoint,omitempty"`
}

// MarshalJSON emits only the fields relevant to the mode kind.
func (m Mode) MarshalJSON() ([]byte, error) {
	out := modeJSON{Kind: m.Kind}
	if out.Kind == "" {
		out.Kind = ModeIdle
	}
	if r, ok := m.ArmedRole(); ok {
		out.Role = &r
	}
	if c, ok := m.PendingEndpoint(); ok {
		out.Endpoint = &c
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var in modeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case ModePlacementArmed:
		if in.Role == nil {
			return fmt.Errorf("mode %q requires a role", in.Kind)
		}
		*m = Armed(*in.Role)
	case ModeEndpointSelected:
		if in.Endpoint == nil {
			return fmt.Errorf("mode %q requires an endpoint", in.Kind)
		}
		*m = Selected(*in.Endpoint)
	case ModeIdle, "":
		*m = Idle()
	default:
		return fmt.Errorf("unknown mode %q", in.Kind)
	}
	return nil
}
