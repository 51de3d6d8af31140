package domain

// SnapshotDiff represents the changes between two snapshots of a session.
// It is designed to be serialized to JSON for partial updates on the client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Inputs      *CoordDelta      `json:"inputs,omitempty"`
	Outputs     *CoordDelta      `json:"outputs,omitempty"`
	Hidden      *CoordDelta      `json:"hidden,omitempty"`
	Connections *ConnectionDelta `json:"connections,omitempty"`

	// Mode is set only when the interaction mode changed.
	Mode *Mode `json:"mode,omitempty"`
}

// CoordDelta lists points that entered or left a collection.
type CoordDelta struct {
	Added   []Coord `json:"added,omitempty"`
	Removed []Coord `json:"removed,omitempty"`
}

// ConnectionDelta lists connections that were created or removed.
type ConnectionDelta struct {
	Added   []Connection `json:"added,omitempty"`
	Removed []Connection `json:"removed,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// Membership is compared as sets: a pure reordering is not a change.
// It returns nil when nothing changed.
func Diff(sessionID string, oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}
	var old Snapshot
	if oldSnap != nil {
		old = *oldSnap
	}

	diff := &SnapshotDiff{
		SessionID:   sessionID,
		Inputs:      diffCoords(old.Inputs, newSnap.Inputs),
		Outputs:     diffCoords(old.Outputs, newSnap.Outputs),
		Hidden:      diffCoords(old.Hidden, newSnap.Hidden),
		Connections: diffConnections(old.Connections, newSnap.Connections),
	}
	if oldSnap == nil || oldSnap.Mode != newSnap.Mode {
		mode := newSnap.Mode
		diff.Mode = &mode
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffCoords(old, new []Coord) *CoordDelta {
	oldSet := make(map[Coord]struct{}, len(old))
	for _, c := range old {
		oldSet[c] = struct{}{}
	}
	newSet := make(map[Coord]struct{}, len(new))
	for _, c := range new {
		newSet[c] = struct{}{}
	}

	delta := &CoordDelta{}
	for _, c := range new {
		if _, ok := oldSet[c]; !ok {
			delta.Added = append(delta.Added, c)
		}
	}
	for _, c := range old {
		if _, ok := newSet[c]; !ok {
			delta.Removed = append(delta.Removed, c)
		}
	}

	if len(delta.Added) == 0 && len(delta.Removed) == 0 {
		return nil
	}
	return delta
}

func diffConnections(old, new []Connection) *ConnectionDelta {
	delta := &ConnectionDelta{}
	for _, c := range new {
		if !containsConnection(old, c) {
			delta.Added = append(delta.Added, c)
		}
	}
	for _, c := range old {
		if !containsConnection(new, c) {
			delta.Removed = append(delta.Removed, c)
		}
	}

	if len(delta.Added) == 0 && len(delta.Removed) == 0 {
		return nil
	}
	return delta
}

func containsConnection(list []Connection, c Connection) bool {
	for _, existing := range list {
		if existing.Equal(c) {
			return true
		}
	}
	return false
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.Inputs == nil &&
		d.Outputs == nil &&
		d.Hidden == nil &&
		d.Connections == nil &&
		d.Mode == nil
}
