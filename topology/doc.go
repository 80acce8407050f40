// Package topology implements the immutable, CSR-encoded structural layout
// of a stabilization graph: a topologically-ordered array of nodes, a
// flattened forward-edge adjacency (Compressed Sparse Row), a source
// bitset, and an O(1) name-to-index lookup.
//
// A Topology is built once, by Builder, and never mutated afterward — it
// is freely shareable by reference across the engine and any observers.
// Builder itself performs a Kahn-style topological sort over an
// array-backed zero-in-degree queue, tie-breaking on insertion order so
// that identical builder inputs always produce identical topoIndex
// assignments.
//
// Grounded on lvlath's dfs package: the three-color (White/Gray/Black)
// cycle-detection idiom and its ErrCycleDetected sentinel carry over in
// spirit, but the algorithm itself is Kahn's rather than DFS post-order,
// since an array-backed queue with a "count processed" diagnostic on
// cycle failure falls out of Kahn's in-degree bookkeeping for free.
package topology
