// Package engine implements the dirty-propagation stabilization algorithm:
// a single linear pass over a topology.Topology's nodes in topological
// order, recomputing only what the per-node dirty bitmap marks, and
// firing lifecycle callbacks to an installed listener.
//
// The engine is single-threaded and cooperative: a single logical
// consumer drives MarkDirty and Stabilize, and Stabilize itself never
// blocks, never retries a failed node, and never iterates to a fixed
// point — exactly one pass per cycle.
//
// Grounded on services/trace/dag's executor/listener-dispatch idiom
// (AleutianLocal) for the shape of a sequential, error-tolerant traversal
// that keeps going after a single node faults, adapted here to the CSR
// topology's linear index-order scan instead of a worklist over named
// dependencies.
package engine
