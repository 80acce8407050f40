// Package intake implements a bounded single-producer/single-consumer
// event queue and its consumer loop: a pre-allocated ring of UpdateEvent
// cells, FIFO delivery, zero per-event heap allocation on the hot path,
// and batch coalescing (many updates before one engine.Stabilize call).
//
// Grounded on lvlath's context-aware run-loop idiom (its
// WithContext-style cancellation) for Consumer.Run, generalized from a
// single blocking call to a loop that drains the queue until ctx is
// cancelled.
package intake
