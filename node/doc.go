// Package node defines the value and cutoff model at the heart of the
// stabilization engine: scalar, vector, and boolean values; source nodes
// that accept external writes; computed nodes that derive their value from
// upstream nodes each time they are stabilized; and the pluggable
// change-detection policies ("cutoffs") that decide whether a recomputed
// value is worth propagating downstream.
//
// Every concrete node type implements Node, the two-method contract the
// engine actually uses:
//
//	type Node interface {
//	    Name() string
//	    Stabilize() (changed bool, err error)
//	}
//
// Source nodes (ScalarSourceNode, VectorSourceNode) additionally satisfy
// Source and expose Update or UpdateAt/UpdateAll so an intake layer can
// push external updates into them. Computed nodes bind to
// their upstreams at construction time via plain function closures over
// read-only handles (ScalarHandle / VectorHandle / BoolHandle) — a weak,
// non-owning borrow of the upstream's value, never of its lifetime. The
// topology owns every node; nothing here holds or needs a mutex, since the
// engine is the only caller and it runs single-threaded and cooperatively.
package node
