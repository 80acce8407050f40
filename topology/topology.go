package topology

import (
	"fmt"

	"github.com/katalvlaran/stabilize/node"
)

// Topology is the immutable, post-build CSR store: nodes in topological
// order, a source bitset, a flattened child adjacency, in-degree
// diagnostics, and a name index. It is read-only and safe to share by
// reference across the engine and any observers — no field is ever
// mutated after Builder.Build returns it.
type Topology struct {
	nodes        []node.Node    // topoIndex -> node, topoIndex(u) < topoIndex(v) for every edge u->v
	isSource     []bool         // topoIndex -> is this a source node
	childOffsets []int          // CSR prefix, length N+1
	childList    []int          // flattened child topoIndex list, length E
	parentCount  []int          // topoIndex -> in-degree, for diagnostics
	nameIndex    map[string]int // name -> topoIndex
}

// NodeCount returns N, the number of nodes in the topology.
func (t *Topology) NodeCount() int { return len(t.nodes) }

// Node returns the node at topoIndex i.
func (t *Topology) Node(i int) node.Node { return t.nodes[i] }

// IsSource reports whether the node at topoIndex i is a source.
func (t *Topology) IsSource(i int) bool { return t.isSource[i] }

// ChildrenRange returns the [start, end) slice bounds into ChildAt for the
// node at topoIndex i.
func (t *Topology) ChildrenRange(i int) (start, end int) {
	return t.childOffsets[i], t.childOffsets[i+1]
}

// ChildAt returns the topoIndex of the k-th flattened child-list entry,
// where k falls within a range returned by ChildrenRange.
func (t *Topology) ChildAt(k int) int { return t.childList[k] }

// ParentCount returns the in-degree of the node at topoIndex i.
func (t *Topology) ParentCount(i int) int { return t.parentCount[i] }

// TopoIndex resolves a node name to its topoIndex in O(1). ok is false if
// name is not present in this topology.
func (t *Topology) TopoIndex(name string) (idx int, ok bool) {
	idx, ok = t.nameIndex[name]
	return
}

// MustTopoIndex resolves a node name to its topoIndex, returning
// ErrUnknownName wrapped with the offending name if absent.
func (t *Topology) MustTopoIndex(name string) (int, error) {
	idx, ok := t.nameIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return idx, nil
}

// Names returns every node name in topological order. The returned slice
// is a fresh copy; callers may not mutate the topology through it.
func (t *Topology) Names() []string {
	out := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.Name()
	}
	return out
}
