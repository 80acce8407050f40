// SPDX-License-Identifier: MIT
// File: builder.go
// Role: Accumulate-then-finalize orchestrator for Topology construction.
// Design contract:
//   - One entry point: Build() validates dependency closure, then runs
//     Kahn's algorithm, then freezes.
//   - Determinism: identical AddNode call order on identical inputs
//     always yields an identical topoIndex assignment (insertion-order
//     tie-break in the zero-in-degree queue).
//   - Safety: never panics; returns sentinel/typed errors for every
//     validation failure.
package topology

import "github.com/katalvlaran/stabilize/node"

// pendingNode holds one not-yet-ordered node's accumulated registration
// state while the builder is open.
type pendingNode struct {
	node       node.Node
	isSource   bool
	dependsOn  []string // upstream names this node reads from
}

// Builder accumulates (node, upstream-edges, source-flag) triples and
// produces an immutable Topology via a Kahn-style topological sort.
//
// Builder is single-use: once Build has been called (successfully or not)
// every further mutation returns ErrBuildFrozen — after freeze no
// structural change is permitted.
type Builder struct {
	order  []string // insertion order of names, for deterministic tie-breaking
	byName map[string]*pendingNode
	frozen bool
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{byName: make(map[string]*pendingNode)}
}

// AddNode registers n (named n.Name()) as a source or computed node,
// depending on upstream node names dependsOn. Edges are installed
// implicitly: for every name in dependsOn, an edge name->n.Name() is
// added once all registrations are known.
//
// Returns ErrNilNode if n is nil, ErrBuildFrozen if Build has already run,
// or a *DuplicateNameError if n.Name() was already registered.
func (b *Builder) AddNode(n node.Node, isSource bool, dependsOn ...string) error {
	if b.frozen {
		return ErrBuildFrozen
	}
	if n == nil {
		return ErrNilNode
	}
	name := n.Name()
	if _, exists := b.byName[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	deps := make([]string, len(dependsOn))
	copy(deps, dependsOn)
	b.byName[name] = &pendingNode{node: n, isSource: isSource, dependsOn: deps}
	b.order = append(b.order, name)
	return nil
}

// Build finalizes the topology. It validates dependency closure (every
// name referenced by dependsOn must have been registered via AddNode),
// then runs Kahn's algorithm over an array-backed zero-in-degree queue,
// breaking ties by insertion order, which makes the resulting topoIndex
// assignment deterministic for identical builder inputs.
//
// On success the Builder is frozen; further AddNode calls fail with
// ErrBuildFrozen. On failure (*UnknownDependencyError or *CycleError) the
// Builder is also frozen — a partially-built topology is never usable.
//
// Complexity: O(V+E) — one pass for dependency closure, one for Kahn's
// algorithm, one to remap into topoIndex order.
func (b *Builder) Build() (*Topology, error) {
	if b.frozen {
		return nil, ErrBuildFrozen
	}
	b.frozen = true

	n := len(b.order)
	nameToIdx := make(map[string]int, n)
	for i, name := range b.order {
		nameToIdx[name] = i
	}

	// Dependency closure check, in insertion order for deterministic error
	// reporting (first offending edge wins).
	for _, name := range b.order {
		pn := b.byName[name]
		for _, dep := range pn.dependsOn {
			if _, ok := nameToIdx[dep]; !ok {
				return nil, &UnknownDependencyError{From: dep, To: name}
			}
		}
	}

	// Build forward adjacency (upstream-index -> list of downstream
	// indices) and in-degree counts, both indexed by insertion position.
	inDegree := make([]int, n)
	forward := make([][]int, n)
	for _, name := range b.order {
		v := nameToIdx[name]
		pn := b.byName[name]
		inDegree[v] = len(pn.dependsOn)
		for _, dep := range pn.dependsOn {
			u := nameToIdx[dep]
			forward[u] = append(forward[u], v)
		}
	}

	// Kahn's algorithm: array-backed queue, insertion-order tie-break.
	queue := make([]int, 0, n)
	for _, name := range b.order {
		if inDegree[nameToIdx[name]] == 0 {
			queue = append(queue, nameToIdx[name])
		}
	}

	topoOrder := make([]int, 0, n)       // insertion-index -> topoIndex position not yet known; we record insertion-index order
	assigned := make([]int, n)           // insertion-index -> topoIndex (-1 until assigned)
	for i := range assigned {
		assigned[i] = -1
	}

	head := 0
	for head < len(queue) {
		u := queue[head]
		head++
		assigned[u] = len(topoOrder)
		topoOrder = append(topoOrder, u)
		for _, v := range forward[u] {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(topoOrder) < n {
		pending := make([]string, 0, n-len(topoOrder))
		for _, name := range b.order {
			if assigned[nameToIdx[name]] == -1 {
				pending = append(pending, name)
			}
		}
		return nil, &CycleError{Processed: len(topoOrder), Pending: pending}
	}

	// Remap every array to the new topoIndex ordering.
	nodes := make([]node.Node, n)
	isSource := make([]bool, n)
	parentCount := make([]int, n)
	nameIndex := make(map[string]int, n)
	// recompute parent counts fresh (inDegree above was consumed by the algorithm)
	freshInDegree := make([]int, n)
	for _, name := range b.order {
		freshInDegree[nameToIdx[name]] = len(b.byName[name].dependsOn)
	}

	for insIdx, topoIdx := range assigned {
		name := b.order[insIdx]
		pn := b.byName[name]
		nodes[topoIdx] = pn.node
		isSource[topoIdx] = pn.isSource
		parentCount[topoIdx] = freshInDegree[insIdx]
		nameIndex[name] = topoIdx
	}

	// Build CSR child list: iterate nodes in final topoIndex order so
	// childOffsets is monotonic, translating forward[] (insertion-index
	// based) entries to topoIndex space.
	childOffsets := make([]int, n+1)
	totalEdges := 0
	for _, adj := range forward {
		totalEdges += len(adj)
	}
	childList := make([]int, 0, totalEdges)
	for topoIdx := 0; topoIdx < n; topoIdx++ {
		childOffsets[topoIdx] = len(childList)
		insIdx := topoOrder[topoIdx] // topoOrder[k] = insertion-index assigned topoIndex k
		for _, v := range forward[insIdx] {
			childList = append(childList, assigned[v])
		}
	}
	childOffsets[n] = len(childList)

	return &Topology{
		nodes:        nodes,
		isSource:     isSource,
		childOffsets: childOffsets,
		childList:    childList,
		parentCount:  parentCount,
		nameIndex:    nameIndex,
	}, nil
}
