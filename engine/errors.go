package engine

import "errors"

// ErrNilTopology is returned by NewEngine when given a nil topology.
var ErrNilTopology = errors.New("engine: nil topology")

// ErrIndexOutOfRange is returned by MarkDirty when the index falls outside
// [0, NodeCount).
var ErrIndexOutOfRange = errors.New("engine: index out of range")

// ErrUnknownName is returned by MarkDirtyName for a name the topology does
// not contain.
var ErrUnknownName = errors.New("engine: unknown node name")
