package node

// ScalarComputedNode pulls from bound upstream handles each time it is
// stabilized via fn, a pure(ish) kernel that may carry its own rolling
// state (e.g. an EWMA's accumulator) but must not mutate its upstreams.
// It implements Node and ScalarHandle.
type ScalarComputedNode struct {
	name   string
	fn     func() float64
	cutoff Cutoff
	cached float64
	first  bool
}

// NewScalarComputed constructs a scalar computed node named name, driven
// by kernel fn and pruned by cutoff. Returns ErrNilKernel if fn is nil.
func NewScalarComputed(name string, fn func() float64, cutoff Cutoff) (*ScalarComputedNode, error) {
	if fn == nil {
		return nil, ErrNilKernel
	}
	return &ScalarComputedNode{name: name, fn: fn, cutoff: cutoff, first: true}, nil
}

// Name implements Node.
func (c *ScalarComputedNode) Name() string { return c.name }

// Scalar implements ScalarHandle.
func (c *ScalarComputedNode) Scalar() float64 { return c.cached }

// Stabilize invokes the kernel, applies the cutoff against the previously
// cached value, and updates the cache.
func (c *ScalarComputedNode) Stabilize() (bool, error) {
	next := c.fn()
	changed := c.first || c.cutoff.Changed(c.cached, next)
	c.first = false
	c.cached = next
	return changed, nil
}

// VectorComputedNode writes directly into a pre-allocated output buffer
// owned by the node, avoiding any per-stabilize allocation. fn receives
// the buffer to fill (len(buf) == size) and must write exactly size
// values into it.
type VectorComputedNode struct {
	name    string
	fn      func(buf []float64)
	tol     float64
	headers []string
	cached  []float64
	scratch []float64
	first   bool
}

// NewVectorComputed constructs a vector computed node of the given size,
// driven by kernel fn and an element-wise absolute tolerance. Returns
// ErrInvalidSize if size <= 0, or ErrNilKernel if fn is nil.
func NewVectorComputed(name string, size int, fn func(buf []float64), tolerance float64, headers []string) (*VectorComputedNode, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if fn == nil {
		return nil, ErrNilKernel
	}
	var hdrs []string
	if headers != nil {
		hdrs = make([]string, len(headers))
		copy(hdrs, headers)
	}
	return &VectorComputedNode{
		name:    name,
		fn:      fn,
		tol:     tolerance,
		headers: hdrs,
		cached:  make([]float64, size),
		scratch: make([]float64, size),
		first:   true,
	}, nil
}

// Name implements Node.
func (v *VectorComputedNode) Name() string { return v.name }

// VectorSize implements VectorHandle.
func (v *VectorComputedNode) VectorSize() int { return len(v.cached) }

// VectorAt implements VectorHandle.
func (v *VectorComputedNode) VectorAt(i int) float64 { return v.cached[i] }

// Headers implements VectorHandle.
func (v *VectorComputedNode) Headers() []string { return v.headers }

// Stabilize invokes the kernel into the scratch buffer, compares it
// element-wise against the cache, then swaps scratch into cache.
func (v *VectorComputedNode) Stabilize() (bool, error) {
	v.fn(v.scratch)
	changed := v.first || VectorChanged(v.cached, v.scratch, v.tol)
	v.first = false
	v.cached, v.scratch = v.scratch, v.cached
	return changed, nil
}

// BooleanComputedNode evaluates a boolean kernel. It reports changed on
// its first stabilization regardless of value — so downstream wiring
// observes the initial state — and thereafter only on a flip.
type BooleanComputedNode struct {
	name   string
	fn     func() bool
	cached bool
	first  bool
}

// NewBooleanComputed constructs a boolean computed node driven by kernel
// fn. Returns ErrNilKernel if fn is nil.
func NewBooleanComputed(name string, fn func() bool) (*BooleanComputedNode, error) {
	if fn == nil {
		return nil, ErrNilKernel
	}
	return &BooleanComputedNode{name: name, fn: fn, first: true}, nil
}

// Name implements Node.
func (b *BooleanComputedNode) Name() string { return b.name }

// Bool implements BoolHandle.
func (b *BooleanComputedNode) Bool() bool { return b.cached }

// Stabilize invokes the kernel and reports change on first run or flip.
func (b *BooleanComputedNode) Stabilize() (bool, error) {
	next := b.fn()
	changed := b.first || next != b.cached
	b.first = false
	b.cached = next
	return changed, nil
}

// NAryComputedNode is a scalar computed node with an arbitrary-arity
// kernel: it gathers its upstreams' current scalars into a pre-allocated
// scratch slice each call (no per-call allocation) and passes that slice
// to fn.
type NAryComputedNode struct {
	name    string
	inputs  []ScalarHandle
	scratch []float64
	fn      func(ins []float64) float64
	cutoff  Cutoff
	cached  float64
	first   bool
}

// NewNAryComputed constructs an n-ary scalar computed node over inputs,
// driven by kernel fn and pruned by cutoff. Returns ErrNilKernel if fn is
// nil.
func NewNAryComputed(name string, inputs []ScalarHandle, fn func(ins []float64) float64, cutoff Cutoff) (*NAryComputedNode, error) {
	if fn == nil {
		return nil, ErrNilKernel
	}
	return &NAryComputedNode{
		name:    name,
		inputs:  inputs,
		scratch: make([]float64, len(inputs)),
		fn:      fn,
		cutoff:  cutoff,
		first:   true,
	}, nil
}

// Name implements Node.
func (n *NAryComputedNode) Name() string { return n.name }

// Scalar implements ScalarHandle.
func (n *NAryComputedNode) Scalar() float64 { return n.cached }

// Stabilize gathers upstream scalars into the scratch buffer, invokes the
// kernel, applies the cutoff, and updates the cache.
func (n *NAryComputedNode) Stabilize() (bool, error) {
	for i, in := range n.inputs {
		n.scratch[i] = in.Scalar()
	}
	next := n.fn(n.scratch)
	changed := n.first || n.cutoff.Changed(n.cached, next)
	n.first = false
	n.cached = next
	return changed, nil
}

// NewSelect builds a select/conditional scalar computed node: a scalar
// computed node with three upstreams (cond, a, b) returning a.Scalar() if
// cond.Bool() else b.Scalar(). This is deliberately not short-circuited —
// both branches are always read through their dirty-aware handles, so
// neither branch can serve a stale value on the first post-change cycle.
func NewSelect(name string, cond BoolHandle, a, b ScalarHandle, cutoff Cutoff) (*ScalarComputedNode, error) {
	return NewScalarComputed(name, func() float64 {
		av := a.Scalar()
		bv := b.Scalar()
		if cond.Bool() {
			return av
		}
		return bv
	}, cutoff)
}
