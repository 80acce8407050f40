// SPDX-License-Identifier: MIT
// File: node.go
// Role: Thin, deterministic public facade — the node contract every
// source and computed node type implements, and the read-only handle
// interfaces kernels use to borrow an upstream's value.
// Policy:
//   - No algorithms or hidden state here; each type's own file owns its
//     Stabilize logic.
//   - Handles are non-owning borrows: a kernel reads through a handle, it
//     never stores or mutates the node behind it.
package node

// Node is the minimal contract the stabilization engine relies on: a
// stable name (used for diagnostics and the topology's name index) and a
// single stabilize step that recomputes (or, for a source, re-examines)
// the node's value and reports whether the change is meaningful enough to
// propagate to dependents.
//
// Stabilize must never block and must not call back into the engine. A
// computed node's Stabilize invokes its kernel; a source's Stabilize
// compares the value most recently written by Update/UpdateAt/UpdateAll
// against the value observed at the end of the previous stabilize call.
type Node interface {
	// Name returns the node's unique identifier within its topology.
	Name() string
	// Stabilize recomputes the node's value and reports whether it
	// changed meaningfully per the node's cutoff policy. err is non-nil
	// only for a compute fault inside a kernel; the engine surfaces it via
	// onNodeError and continues with the next dirty node.
	Stabilize() (changed bool, err error)
}

// Source marks a node whose value is written from outside the engine
// rather than derived from upstreams. The engine calls ClearDirty on it at
// the end of every cycle; which nodes start dirty is decided by the
// isSource flag passed to topology.Builder.AddNode, not by this interface.
type Source interface {
	Node
	// ClearDirty is called once per cycle, after every node has been
	// visited, for every source. Built-in sources treat this as a no-op;
	// it exists so an extended source type may keep an "unread" flag
	// without the engine needing to know about it.
	ClearDirty()
}

// ScalarHandle is a read-only, non-owning borrow of a node's current
// scalar value, used by computed-node kernels to read an upstream without
// taking ownership of or holding a reference to the upstream node itself.
type ScalarHandle interface {
	Scalar() float64
}

// VectorHandle is a read-only, non-owning borrow of a node's current
// vector value.
type VectorHandle interface {
	VectorSize() int
	VectorAt(i int) float64
	Headers() []string
}

// BoolHandle is a read-only, non-owning borrow of a node's current boolean
// value.
type BoolHandle interface {
	Bool() bool
}
