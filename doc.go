/*
Package substrate is the editing core of a HyperNEAT substrate designer.

A substrate is a sparse graph on a zero-centered integer grid: explicitly placed input
and output nodes, undirected connections between grid points, and hidden nodes that
are derived from connection endpoints that carry no explicit role. The package owns
the state model and its mutation rules; views stay outside and talk to a Designer
through two write entry points and a handful of read accessors.

# Concept

A view emits raw intents: "the user clicked cell (x, y)" and "the user wants to place
or remove a node of role R". The Designer interprets each click according to its
interaction mode (idle, placement armed, endpoint selected), mutates the node registry
or the connection set, and returns to idle. Every read derives the hidden nodes from
the current state, so a view can never observe a stale classification.

# Usage

	d, err := substrate.New()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	// "Place/Remove Input Node" button, then a click on the origin.
	_ = d.OnArmPlacement(ctx, domain.RoleInput)
	_ = d.OnGridClick(ctx, 0, 0)

	// Two idle clicks connect (3, 2) to the input.
	_ = d.OnGridClick(ctx, 3, 2)
	_ = d.OnGridClick(ctx, 0, 0)

	snap := d.Snapshot()
	fmt.Println(snap.Inputs, snap.Hidden, snap.Connections)

A Designer is single-writer and not safe for concurrent use. Hosts that serve several
clients wrap designers in pkg/session, which serializes access per session.
*/
package substrate
