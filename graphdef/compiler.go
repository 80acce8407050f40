// SPDX-License-Identifier: MIT
// Package: stabilize/graphdef
//
// compiler.go — thin public entry-point for the graphdef package.
//
// Design contract:
//   - One orchestrator: Compile(def, reg). Expands templates, resolves
//     instantiation order, runs every registered factory in order, wires
//     the result into a topology.Builder.
//   - Determinism: same definition (same node declaration order) plus the
//     same registry always yields an identical topoIndex assignment.
//   - Safety: never panics; returns typed errors for every validation
//     failure (unknown type, missing dependency, cycle, ...).
package graphdef

import (
	"github.com/katalvlaran/stabilize/engine"
	"github.com/katalvlaran/stabilize/node"
	"github.com/katalvlaran/stabilize/topology"
)

// Compile expands def's templates, resolves dependency order, instantiates
// every node through reg, and wires the result into a topology.Topology
// and an engine.Engine.
//
// Complexity: O(V+E) in the number of declared nodes and edges, plus the
// cost of each factory call.
func Compile(def *GraphDefinition, reg *Registry) (*engine.Engine, *topology.Topology, error) {
	expanded, err := ExpandTemplates(def)
	if err != nil {
		return nil, nil, err
	}

	order, err := instantiationOrder(expanded)
	if err != nil {
		return nil, nil, err
	}

	byName := make(map[string]NodeDef, len(expanded))
	for _, n := range expanded {
		byName[n.Name] = n
	}

	built := make(map[string]node.Node, len(expanded))
	isSource := make(map[string]bool, len(expanded))

	for _, name := range order {
		def := byName[name]
		reg2, ok := reg.lookup(def.Type)
		if !ok {
			return nil, nil, &TypeError{Node: def.Name, Type: def.Type}
		}

		upstreams, err := resolveUpstreams(def, reg2.namedInputRoles, built)
		if err != nil {
			return nil, nil, err
		}

		n, src, err := reg2.factory(def.Name, def.Properties, upstreams)
		if err != nil {
			return nil, nil, err
		}
		built[name] = n
		isSource[name] = src
	}

	// Install nodes and edges into the topology builder in the original
	// declaration order, so independently-run compiles over equivalent
	// definitions assign identical topoIndex values regardless of source
	// format.
	b := topology.NewBuilder()
	for _, n := range expanded {
		deps := upstreamNames(n)
		if err := b.AddNode(built[n.Name], isSource[n.Name], deps...); err != nil {
			return nil, nil, err
		}
	}

	topo, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.NewEngine(topo)
	if err != nil {
		return nil, nil, err
	}
	return eng, topo, nil
}

// resolveUpstreams orders def's upstreams per roles (named-input types) or
// per def.Dependencies (positional types), looking each already-built
// node.Node up by name.
func resolveUpstreams(def NodeDef, roles []string, built map[string]node.Node) ([]ResolvedUpstream, error) {
	if len(roles) > 0 {
		out := make([]ResolvedUpstream, len(roles))
		for i, role := range roles {
			upstreamName, ok := def.Inputs[role]
			if !ok {
				return nil, &NamedInputError{Node: def.Name, Role: role}
			}
			n, ok := built[upstreamName]
			if !ok {
				return nil, &DependencyError{Node: def.Name, Upstream: upstreamName}
			}
			out[i] = ResolvedUpstream{Role: role, Node: n}
		}
		return out, nil
	}

	out := make([]ResolvedUpstream, len(def.Dependencies))
	for i, upstreamName := range def.Dependencies {
		n, ok := built[upstreamName]
		if !ok {
			return nil, &DependencyError{Node: def.Name, Upstream: upstreamName}
		}
		out[i] = ResolvedUpstream{Node: n}
	}
	return out, nil
}

// upstreamNames returns every upstream name n references, via either
// Dependencies or Inputs, for edge installation.
func upstreamNames(n NodeDef) []string {
	out := make([]string, 0, len(n.Dependencies)+len(n.Inputs))
	out = append(out, n.Dependencies...)
	for _, name := range n.Inputs {
		out = append(out, name)
	}
	return out
}

// instantiationOrder runs a Kahn topological sort over the declared node
// names (before any factory runs), with insertion-order tie-breaking,
// mirroring topology.Builder's own algorithm at the string level since
// node objects do not exist yet at this phase.
func instantiationOrder(defs []NodeDef) ([]string, error) {
	n := len(defs)
	nameToIdx := make(map[string]int, n)
	order := make([]string, n)
	for i, d := range defs {
		if _, dup := nameToIdx[d.Name]; dup {
			return nil, &DuplicateError{Name: d.Name}
		}
		nameToIdx[d.Name] = i
		order[i] = d.Name
	}

	for _, d := range defs {
		for _, dep := range upstreamNames(d) {
			if _, ok := nameToIdx[dep]; !ok {
				return nil, &DependencyError{Node: d.Name, Upstream: dep}
			}
		}
	}

	inDegree := make([]int, n)
	forward := make([][]int, n)
	for _, d := range defs {
		v := nameToIdx[d.Name]
		deps := upstreamNames(d)
		inDegree[v] = len(deps)
		for _, dep := range deps {
			u := nameToIdx[dep]
			forward[u] = append(forward[u], v)
		}
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	result := make([]string, 0, n)
	head := 0
	for head < len(queue) {
		u := queue[head]
		head++
		result = append(result, order[u])
		for _, v := range forward[u] {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(result) < n {
		pending := make([]string, 0, n-len(result))
		seen := make(map[string]bool, len(result))
		for _, name := range result {
			seen[name] = true
		}
		for _, name := range order {
			if !seen[name] {
				pending = append(pending, name)
			}
		}
		return nil, &InstantiationCycleError{Pending: pending}
	}
	return result, nil
}
