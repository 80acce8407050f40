package intake

import "errors"

// ErrQueueClosed is returned by Enqueue once Close has been called
// (TryEnqueue reports the same condition by returning false).
var ErrQueueClosed = errors.New("intake: queue closed")

// ErrInvalidIndex is reported (never returned to a producer — it is
// routed to the consumer's error sink) when an UpdateEvent names a
// topoIndex outside the topology's range.
var ErrInvalidIndex = errors.New("intake: node index out of range")

// ErrNotSource is reported when an UpdateEvent targets a node that is
// not a source.
var ErrNotSource = errors.New("intake: node is not a source")

// ErrWrongUpdateKind is reported when a scalar update targets a vector
// source or vice versa.
var ErrWrongUpdateKind = errors.New("intake: update kind does not match node kind")
