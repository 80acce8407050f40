package engine

import "time"

// Listener observes the lifecycle of a single Stabilize call. Every method
// is called synchronously on the engine's goroutine; a listener must not
// block or call back into the engine.
//
// Grounded on dag executor's listener-dispatch shape
// (AleutianLocal services/trace/dag): a start/per-step/end triple, with the
// per-step hook split into a success and a failure callback so a listener
// never has to branch on an error value buried in a generic "step" event.
type Listener interface {
	// OnStabilizationStart fires once, before any node in epoch is visited.
	OnStabilizationStart(epoch uint64)
	// OnNodeStabilized fires after a dirty node recomputes without error.
	OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, duration time.Duration)
	// OnNodeError fires instead of OnNodeStabilized when node.Stabilize
	// returns a non-nil error. The node's dirty bit is still cleared and
	// its children are not marked dirty; the pass continues with the next
	// node.
	OnNodeError(epoch uint64, topoIndex int, name string, err error)
	// OnStabilizationEnd fires once, after every dirty node in epoch has
	// been visited. count is the number of nodes visited (dirty at entry).
	OnStabilizationEnd(epoch uint64, count int)
}

// NoopListener implements Listener with no-op methods. It is the Engine's
// default listener so SetListener is optional.
type NoopListener struct{}

func (NoopListener) OnStabilizationStart(uint64)                                    {}
func (NoopListener) OnNodeStabilized(uint64, int, string, bool, time.Duration)       {}
func (NoopListener) OnNodeError(uint64, int, string, error)                          {}
func (NoopListener) OnStabilizationEnd(uint64, int)                                  {}

var _ Listener = NoopListener{}
