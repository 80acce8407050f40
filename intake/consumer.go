package intake

import (
	"context"
	"fmt"

	"github.com/katalvlaran/stabilize/engine"
	"github.com/katalvlaran/stabilize/topology"
)

// scalarUpdatable is satisfied by *node.ScalarSourceNode.
type scalarUpdatable interface {
	Update(x float64)
}

// vectorUpdatable is satisfied by *node.VectorSourceNode.
type vectorUpdatable interface {
	UpdateAt(i int, x float64) error
}

// ErrorSink receives a per-event error: the offending sequence number and
// the error. Implementations should be cheap and non-blocking (e.g. a
// rate-limited log write) since they run on the consumer's hot path.
type ErrorSink func(sequence uint64, err error)

// Consumer is a single-thread consumer: it drains q in arrival order,
// applies each update to its source node, marks it dirty, and calls
// Stabilize once per batch (on BatchEnd or when the queue drains empty).
type Consumer struct {
	queue *Queue
	eng   *engine.Engine
	topo  *topology.Topology
	onErr ErrorSink
}

// NewConsumer builds a Consumer draining q into eng/topo. onErr may be
// nil, in which case per-event errors are silently dropped (the event is
// still skipped and the sequence preserved).
func NewConsumer(q *Queue, eng *engine.Engine, topo *topology.Topology, onErr ErrorSink) *Consumer {
	if onErr == nil {
		onErr = func(uint64, error) {}
	}
	return &Consumer{queue: q, eng: eng, topo: topo, onErr: onErr}
}

// Run drains the queue until ctx is cancelled or the queue is closed and
// empty. It returns ctx.Err() on cancellation, or nil on a clean close.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		ev, queueEmpty, ok := c.queue.dequeue(ctx)
		if !ok {
			if err := ctx.Err(); err != nil {
				return err
			}
			return nil
		}

		c.eng.NoteEvent()
		if err := c.apply(ev); err != nil {
			c.onErr(ev.Sequence, err)
			continue
		}

		if ev.BatchEnd || queueEmpty {
			c.eng.Stabilize()
		}
	}
}

func (c *Consumer) apply(ev UpdateEvent) error {
	idx := int(ev.NodeIndex)
	if idx < 0 || idx >= c.topo.NodeCount() {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, idx)
	}
	if !c.topo.IsSource(idx) {
		return fmt.Errorf("%w: index %d", ErrNotSource, idx)
	}
	nd := c.topo.Node(idx)

	if ev.VectorIndex < 0 {
		su, ok := nd.(scalarUpdatable)
		if !ok {
			return fmt.Errorf("%w: %s is not a scalar source", ErrWrongUpdateKind, nd.Name())
		}
		su.Update(ev.Value)
	} else {
		vu, ok := nd.(vectorUpdatable)
		if !ok {
			return fmt.Errorf("%w: %s is not a vector source", ErrWrongUpdateKind, nd.Name())
		}
		if err := vu.UpdateAt(int(ev.VectorIndex), ev.Value); err != nil {
			return fmt.Errorf("%w: %v", ErrWrongUpdateKind, err)
		}
	}

	return c.eng.MarkDirty(idx)
}
