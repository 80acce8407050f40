package node

import "math"

// epsilon is the floor used by the relative cutoff's denominator so that
// relative(tol) remains well-defined near zero: |next-prev| > tol*max(|prev|,epsilon).
const epsilon = 1e-12

// Kind identifies a cutoff's change-detection strategy.
type Kind uint8

const (
	// KindExact reports a change on bitwise inequality.
	KindExact Kind = iota
	// KindAbsolute reports a change when |next-prev| exceeds a fixed tolerance.
	KindAbsolute
	// KindRelative reports a change when |next-prev| exceeds tolerance*scale(prev).
	KindRelative
	// KindAlways always reports a change.
	KindAlways
	// KindNever never reports a change.
	KindNever
)

// String renders the cutoff kind's canonical name, as used in graph
// definition property values (see graphdef's "cutoff" property).
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindAbsolute:
		return "absolute"
	case KindRelative:
		return "relative"
	case KindAlways:
		return "always"
	case KindNever:
		return "never"
	default:
		return "unknown"
	}
}

// Cutoff is a small closed sum type evaluated inline on every stabilize
// call — no virtual dispatch.
//
// NaN policy: under KindExact, two NaN values with identical bit patterns
// compare unchanged (true bitwise equality); any other NaN involvement —
// under KindAbsolute or KindRelative — is always treated as a change,
// since a tolerance comparison against NaN is not meaningful.
// KindAlways/KindNever are unconditional and never consult NaN at all.
type Cutoff struct {
	kind Kind
	tol  float64
}

// Exact returns the bitwise-inequality cutoff.
func Exact() Cutoff { return Cutoff{kind: KindExact} }

// Absolute returns a cutoff that reports change when |next-prev| > tol.
// A zero tol degrades to Exact-like sensitivity (any difference,
// including NaN involvement, is reported as changed); a negative tol
// reports every transition as changed, equal values included.
func Absolute(tol float64) Cutoff { return Cutoff{kind: KindAbsolute, tol: tol} }

// Relative returns a cutoff that reports change when
// |next-prev| > tol*max(|prev|, epsilon).
func Relative(tol float64) Cutoff { return Cutoff{kind: KindRelative, tol: tol} }

// Always returns the unconditional-change cutoff.
func Always() Cutoff { return Cutoff{kind: KindAlways} }

// Never returns the unconditional-no-change cutoff.
func Never() Cutoff { return Cutoff{kind: KindNever} }

// Kind reports which strategy this cutoff evaluates.
func (c Cutoff) Kind() Kind { return c.kind }

// Tolerance reports the configured tolerance (meaningless for
// KindExact/KindAlways/KindNever, where it is always zero).
func (c Cutoff) Tolerance() float64 { return c.tol }

// Changed evaluates the cutoff against a scalar transition prev -> next.
func (c Cutoff) Changed(prev, next float64) bool {
	switch c.kind {
	case KindAlways:
		return true
	case KindNever:
		return false
	case KindExact:
		return math.Float64bits(prev) != math.Float64bits(next)
	case KindAbsolute:
		if math.IsNaN(prev) || math.IsNaN(next) {
			return true
		}
		return math.Abs(next-prev) > c.tol
	case KindRelative:
		if math.IsNaN(prev) || math.IsNaN(next) {
			return true
		}
		scale := math.Abs(prev)
		if scale < epsilon {
			scale = epsilon
		}
		return math.Abs(next-prev) > c.tol*scale
	default:
		return math.Float64bits(prev) != math.Float64bits(next)
	}
}

// VectorChanged applies an element-wise absolute tolerance across two
// equal-length slices. A NaN in either element at a given index is always
// reported as changed for that element, regardless of tol.
func VectorChanged(prev, next []float64, tol float64) bool {
	for i := range prev {
		p, n := prev[i], next[i]
		if math.IsNaN(p) || math.IsNaN(n) {
			return true
		}
		if math.Abs(n-p) > tol {
			return true
		}
	}
	return false
}
