package runtime

import "github.com/aretw0/substrate/pkg/domain"

// DeriveHidden returns every connection endpoint that is registered neither as an
// input nor as an output, without duplicates.
//
// The result lists points in order of first appearance (A before B, connection by
// connection) so views render stably; callers must not rely on it beyond that.
func DeriveHidden(conns []domain.Connection, inputs, outputs []domain.Coord) []domain.Coord {
	registered := make(map[domain.Coord]struct{}, len(inputs)+len(outputs))
	for _, c := range inputs {
		registered[c] = struct{}{}
	}
	for _, c := range outputs {
		registered[c] = struct{}{}
	}

	seen := make(map[domain.Coord]struct{})
	hidden := []domain.Coord{}
	add := func(c domain.Coord) {
		if _, ok := registered[c]; ok {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		hidden = append(hidden, c)
	}

	for _, conn := range conns {
		add(conn.A)
		add(conn.B)
	}
	return hidden
}
