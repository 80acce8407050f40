// SPDX-License-Identifier: MIT
// File: source.go
// Role: Source node lifecycle & queries — the externally-written half of
// the node contract (ScalarSourceNode, VectorSourceNode).
//
// Determinism:
//   - Stabilize always reports changed=true on a node's first call,
//     regardless of cutoff, so every source flushes an initial value.
//
// Concurrency:
//   - Not safe for concurrent Update/Stabilize calls; the intake consumer
//     and the engine each own a disjoint half of a source's lifecycle and
//     must not be invoked from different goroutines without external
//     synchronization.
package node

// ScalarSourceNode owns a single externally-written double. Update stores
// the latest external value; Stabilize compares it against the value
// observed at the end of the previous cycle and applies the node's
// cutoff. It implements Node, Source, and ScalarHandle.
type ScalarSourceNode struct {
	name    string
	cutoff  Cutoff
	current float64 // latest value written by Update; may be ahead of stabilized
	last    float64 // value as of the end of the previous successful Stabilize
	first   bool    // true until the first Stabilize call completes
}

// NewScalarSource constructs a scalar source named name, initialized to
// initial, using cutoff to decide whether an Update is meaningful.
func NewScalarSource(name string, initial float64, cutoff Cutoff) *ScalarSourceNode {
	return &ScalarSourceNode{
		name:    name,
		cutoff:  cutoff,
		current: initial,
		last:    initial,
		first:   true,
	}
}

// Name implements Node.
func (s *ScalarSourceNode) Name() string { return s.name }

// Scalar implements ScalarHandle, returning the latest stabilized value.
func (s *ScalarSourceNode) Scalar() float64 { return s.last }

// Update stores a new externally-observed value. It takes effect on the
// next Stabilize call; it does not itself mark anything dirty — callers
// (the intake layer) must explicitly call engine.MarkDirty.
func (s *ScalarSourceNode) Update(v float64) { s.current = v }

// Stabilize reports whether current differs from last per cutoff, then
// adopts current as the new last.
//
// Complexity: O(1).
func (s *ScalarSourceNode) Stabilize() (bool, error) {
	changed := s.first || s.cutoff.Changed(s.last, s.current)
	s.first = false
	s.last = s.current
	return changed, nil
}

// ClearDirty implements Source; scalar sources keep no unread flag.
func (s *ScalarSourceNode) ClearDirty() {}

// VectorSourceNode owns a fixed-size array of externally-written doubles,
// optional per-element string headers, and a shared element-wise
// tolerance. It implements Node, Source, and VectorHandle.
type VectorSourceNode struct {
	name    string
	headers []string
	tol     float64
	current []float64
	last    []float64
	first   bool
}

// NewVectorSource constructs a vector source named name with the given
// initial values, optional headers (nil or matching length), and an
// element-wise absolute tolerance. It returns ErrInvalidSize if initial is
// empty, or ErrHeaderCountMismatch if headers is non-nil and its length
// does not match len(initial).
func NewVectorSource(name string, initial []float64, headers []string, tolerance float64) (*VectorSourceNode, error) {
	if len(initial) == 0 {
		return nil, ErrInvalidSize
	}
	if headers != nil && len(headers) != len(initial) {
		return nil, ErrHeaderCountMismatch
	}
	cur := make([]float64, len(initial))
	copy(cur, initial)
	last := make([]float64, len(initial))
	copy(last, initial)
	var hdrs []string
	if headers != nil {
		hdrs = make([]string, len(headers))
		copy(hdrs, headers)
	}
	return &VectorSourceNode{
		name:    name,
		headers: hdrs,
		tol:     tolerance,
		current: cur,
		last:    last,
		first:   true,
	}, nil
}

// Name implements Node.
func (v *VectorSourceNode) Name() string { return v.name }

// VectorSize implements VectorHandle.
func (v *VectorSourceNode) VectorSize() int { return len(v.last) }

// VectorAt implements VectorHandle, returning the i-th stabilized
// element. i is assumed pre-validated by the caller (graphdef checks the
// index properties of its vector kernels at compile time); an
// out-of-range i panics with a plain slice-index-out-of-range error, not
// ErrIndexOutOfRange.
func (v *VectorSourceNode) VectorAt(i int) float64 { return v.last[i] }

// Headers implements VectorHandle.
func (v *VectorSourceNode) Headers() []string { return v.headers }

// UpdateAt stores a single element update, effective on the next
// Stabilize call. Returns ErrIndexOutOfRange if i is out of bounds.
func (v *VectorSourceNode) UpdateAt(i int, x float64) error {
	if i < 0 || i >= len(v.current) {
		return ErrIndexOutOfRange
	}
	v.current[i] = x
	return nil
}

// UpdateAll replaces every element, effective on the next Stabilize call.
// Returns ErrInvalidSize if len(values) does not match the source's size.
func (v *VectorSourceNode) UpdateAll(values []float64) error {
	if len(values) != len(v.current) {
		return ErrInvalidSize
	}
	copy(v.current, values)
	return nil
}

// Stabilize reports whether any element moved by more than tol since the
// previous cycle, then adopts current as the new last.
//
// Complexity: O(size) for the element-wise comparison and copy.
func (v *VectorSourceNode) Stabilize() (bool, error) {
	changed := v.first || VectorChanged(v.last, v.current, v.tol)
	v.first = false
	copy(v.last, v.current)
	return changed, nil
}

// ClearDirty implements Source; vector sources keep no unread flag.
func (v *VectorSourceNode) ClearDirty() {}
