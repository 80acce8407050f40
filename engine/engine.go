package engine

import (
	"time"

	"github.com/katalvlaran/stabilize/node"
	"github.com/katalvlaran/stabilize/topology"
)

// Engine drives repeated stabilization passes over a fixed Topology,
// tracking a per-node dirty bitmap and a monotonically increasing epoch
// counter: one linear scan from topoIndex 0 to N-1 per Stabilize call,
// each dirty node visited at most once, with dirty propagation strictly
// forward along the CSR child list.
//
// Engine is not safe for concurrent use; a single goroutine (the intake
// consumer) must own MarkDirty and Stabilize calls.
type Engine struct {
	topo     *topology.Topology
	dirty    []bool
	listener Listener
	epoch    uint64

	lastCount    int
	totalEvents  uint64
	pendingCount uint64
	lastEvents   uint64
}

// NewEngine constructs an Engine over topo with every source node marked
// dirty, so the first Stabilize call establishes initial values for the
// whole graph.
func NewEngine(topo *topology.Topology) (*Engine, error) {
	if topo == nil {
		return nil, ErrNilTopology
	}
	n := topo.NodeCount()
	dirty := make([]bool, n)
	for i := 0; i < n; i++ {
		if topo.IsSource(i) {
			dirty[i] = true
		}
	}
	return &Engine{topo: topo, dirty: dirty, listener: NoopListener{}}, nil
}

// SetListener installs l as the engine's sole listener. Pass a
// *CompositeListener to fan out to more than one observer. A nil l resets
// the engine to NoopListener.
func (e *Engine) SetListener(l Listener) {
	if l == nil {
		l = NoopListener{}
	}
	e.listener = l
}

// MarkDirty flags the node at topoIndex i as needing recomputation on the
// next Stabilize call.
func (e *Engine) MarkDirty(i int) error {
	if i < 0 || i >= len(e.dirty) {
		return ErrIndexOutOfRange
	}
	e.dirty[i] = true
	return nil
}

// MarkDirtyName resolves name to a topoIndex and marks it dirty.
func (e *Engine) MarkDirtyName(name string) error {
	i, ok := e.topo.TopoIndex(name)
	if !ok {
		return ErrUnknownName
	}
	return e.MarkDirty(i)
}

// NoteEvent increments the engine's event counters. Callers in the intake
// layer call this once per dequeued update event (including events the
// consumer then rejects as invalid), so the engine can expose
// totalEventsProcessed/lastEpochEvents without importing the intake
// package — this split avoids an import cycle between intake and engine.
func (e *Engine) NoteEvent() {
	e.totalEvents++
	e.pendingCount++
}

// Epoch returns the number of Stabilize calls completed so far.
func (e *Engine) Epoch() uint64 { return e.epoch }

// RestoreEpoch resets the epoch counter, for use by snapshot.Restore
// immediately after restoring node state so the next Stabilize call
// continues the monotonically increasing sequence from the restored
// point rather than from zero. Not for use outside a restore path.
func (e *Engine) RestoreEpoch(epoch uint64) { e.epoch = epoch }

// NodeCount returns the topology's node count.
func (e *Engine) NodeCount() int { return e.topo.NodeCount() }

// TotalEventsProcessed returns the cumulative count of NoteEvent calls.
func (e *Engine) TotalEventsProcessed() uint64 { return e.totalEvents }

// LastEpochEvents returns the number of events NoteEvent recorded between
// the previous Stabilize call and the most recently completed one.
func (e *Engine) LastEpochEvents() uint64 { return e.lastEvents }

// LastStabilizedCount returns how many nodes were visited during the most
// recent Stabilize call.
func (e *Engine) LastStabilizedCount() int { return e.lastCount }

// Stabilize performs one linear pass over the topology, recomputing every
// node whose dirty bit is set, in topoIndex order:
//
//   - dirty[i] is cleared before the node is visited, so a node cannot
//     re-dirty itself within the same pass;
//   - if the node errors, OnNodeError fires, the node's dirty children are
//     NOT propagated, and the pass continues with topoIndex i+1;
//   - if the node's Stabilize reports changed=true, every child in the
//     CSR child list is marked dirty for this same pass (so a later index
//     in this scan may still be visited even though it started clean);
//   - after the scan, ClearDirty is called on every source node's
//     underlying node.Source, regardless of whether it was visited this
//     epoch.
//
// Stabilize never retries and never loops to a fixed point: it is exactly
// one O(N) scan, always, return value is the count of nodes visited.
func (e *Engine) Stabilize() int {
	e.epoch++
	epoch := e.epoch
	e.listener.OnStabilizationStart(epoch)

	count := 0
	n := e.topo.NodeCount()
	for i := 0; i < n; i++ {
		if !e.dirty[i] {
			continue
		}
		e.dirty[i] = false
		count++

		nd := e.topo.Node(i)
		start := time.Now()
		changed, err := nd.Stabilize()
		duration := time.Since(start)

		if err != nil {
			e.listener.OnNodeError(epoch, i, nd.Name(), err)
			continue
		}
		e.listener.OnNodeStabilized(epoch, i, nd.Name(), changed, duration)

		if changed {
			start, end := e.topo.ChildrenRange(i)
			for k := start; k < end; k++ {
				e.dirty[e.topo.ChildAt(k)] = true
			}
		}
	}

	for i := 0; i < n; i++ {
		if !e.topo.IsSource(i) {
			continue
		}
		if src, ok := e.topo.Node(i).(node.Source); ok {
			src.ClearDirty()
		}
	}

	e.lastCount = count
	e.lastEvents = e.pendingCount
	e.pendingCount = 0
	e.listener.OnStabilizationEnd(epoch, count)
	return count
}
