package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventClick            EventType = "click"
	EventNodeToggle       EventType = "node_toggle"
	EventConnectionToggle EventType = "connection_toggle"
	EventModeChange       EventType = "mode_change"
)

// OutcomeKind names what a grid click did.
type OutcomeKind string

const (
	OutcomeNodeAdded          OutcomeKind = "node_added"
	OutcomeNodeRemoved        OutcomeKind = "node_removed"
	OutcomeEndpointSelected   OutcomeKind = "endpoint_selected"
	OutcomeConnectionAdded    OutcomeKind = "connection_added"
	OutcomeConnectionRemoved  OutcomeKind = "connection_removed"
	OutcomeSelectionDiscarded OutcomeKind = "selection_discarded" // Second click on the pending endpoint
)

// Outcome reports the effect of one click on the session.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	Coord      Coord       `json:"coord"`
	Role       Role        `json:"role,omitempty"`      // Node outcomes only
	Connection Connection  `json:"connection,omitzero"` // Connection outcomes only
}

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Session   string    `json:"session,omitempty"`
}

// ClickEvent is emitted once per accepted grid click.
type ClickEvent struct {
	EventBase
	Outcome Outcome `json:"outcome"`
}

// NodeEvent is emitted when a node is added to or removed from a role list.
type NodeEvent struct {
	EventBase
	Role  Role  `json:"role"`
	Coord Coord `json:"coord"`
	Added bool  `json:"added"`
}

// ConnectionEvent is emitted when a connection is added or removed.
type ConnectionEvent struct {
	EventBase
	Connection Connection `json:"connection"`
	Added      bool       `json:"added"`
}

// ModeEvent is emitted whenever the interaction mode changes.
type ModeEvent struct {
	EventBase
	From Mode `json:"from"`
	To   Mode `json:"to"`
}

// LifecycleHooks defines callbacks for designer observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnClick            func(context.Context, *ClickEvent)
	OnNodeToggle       func(context.Context, *NodeEvent)
	OnConnectionToggle func(context.Context, *ConnectionEvent)
	OnModeChange       func(context.Context, *ModeEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnClick:            chain(h.OnClick, other.OnClick),
		OnNodeToggle:       chain(h.OnNodeToggle, other.OnNodeToggle),
		OnConnectionToggle: chain(h.OnConnectionToggle, other.OnConnectionToggle),
		OnModeChange:       chain(h.OnModeChange, other.OnModeChange),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
