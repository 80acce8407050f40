package engine

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// CompositeListener fans a single stream of lifecycle callbacks out to
// multiple child Listeners, isolating each child: a panic or the mere
// presence of a misbehaving child must never stop delivery to the rest,
// and must never propagate into the engine's Stabilize call.
//
// Grounded on the composite-dispatch idiom for trace listeners
// (AleutianLocal services/trace/dag), adapted here with a rate-limited
// fallback log so a panicking child does not itself become a logging
// storm.
type CompositeListener struct {
	children []Listener
	onPanic  func(child int, err error)
	limiter  *rate.Limiter
}

// NewCompositeListener builds a CompositeListener dispatching to children
// in registration order. A recovered panic from any child is rate-limited
// (at most one report per second), normalized to an error via
// recoveredToError, and reported via onPanic if non-nil; onPanic may be
// nil, in which case the panic is simply swallowed.
func NewCompositeListener(onPanic func(child int, err error), children ...Listener) *CompositeListener {
	return &CompositeListener{
		children: children,
		onPanic:  onPanic,
		limiter:  rate.NewLimiter(rate.Limit(1), 1),
	}
}

// Add registers an additional child listener.
func (c *CompositeListener) Add(l Listener) {
	c.children = append(c.children, l)
}

func (c *CompositeListener) guard(i int) {
	if r := recover(); r != nil {
		if c.onPanic != nil && c.limiter.Allow() {
			c.onPanic(i, recoveredToError(r))
		}
	}
}

func (c *CompositeListener) OnStabilizationStart(epoch uint64) {
	for i, l := range c.children {
		c.dispatchStart(i, l, epoch)
	}
}

func (c *CompositeListener) dispatchStart(i int, l Listener, epoch uint64) {
	defer c.guard(i)
	l.OnStabilizationStart(epoch)
}

func (c *CompositeListener) OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, duration time.Duration) {
	for i, l := range c.children {
		c.dispatchNodeStabilized(i, l, epoch, topoIndex, name, changed, duration)
	}
}

func (c *CompositeListener) dispatchNodeStabilized(i int, l Listener, epoch uint64, topoIndex int, name string, changed bool, duration time.Duration) {
	defer c.guard(i)
	l.OnNodeStabilized(epoch, topoIndex, name, changed, duration)
}

func (c *CompositeListener) OnNodeError(epoch uint64, topoIndex int, name string, err error) {
	for i, l := range c.children {
		c.dispatchNodeError(i, l, epoch, topoIndex, name, err)
	}
}

func (c *CompositeListener) dispatchNodeError(i int, l Listener, epoch uint64, topoIndex int, name string, err error) {
	defer c.guard(i)
	l.OnNodeError(epoch, topoIndex, name, err)
}

func (c *CompositeListener) OnStabilizationEnd(epoch uint64, count int) {
	for i, l := range c.children {
		c.dispatchEnd(i, l, epoch, count)
	}
}

func (c *CompositeListener) dispatchEnd(i int, l Listener, epoch uint64, count int) {
	defer c.guard(i)
	l.OnStabilizationEnd(epoch, count)
}

var _ Listener = (*CompositeListener)(nil)

// recoveredToError normalizes an arbitrary recover() value into an error,
// so guard's callers always receive a typed error regardless of what a
// child listener panicked with.
func recoveredToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
