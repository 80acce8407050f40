package intake

// UpdateEvent mutates exactly one source node: a scalar update when
// VectorIndex < 0, otherwise a single-element vector update at
// VectorIndex. Sequence is monotonically increasing per producer and is
// preserved even when the engine drops an invalid event.
type UpdateEvent struct {
	NodeIndex   int32
	Value       float64
	VectorIndex int32
	BatchEnd    bool
	Sequence    uint64
}
