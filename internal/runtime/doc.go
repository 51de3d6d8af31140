// Package runtime implements the editing core of the substrate designer: the node
// registry, the undirected connection set, the hidden node derivation and the
// interaction state machine that dispatches grid clicks to them.
//
// Nothing here is safe for concurrent use. A Machine has exactly one writer; hosts
// that share sessions across goroutines serialize access in pkg/session.
package runtime
