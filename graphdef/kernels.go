package graphdef

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stabilize/node"
)

// registerBuiltins installs a closed set of built-in kernels. Domain
// finance functions beyond this illustrative set (RSI, MACD, etc.) are
// out of scope; these exist to exercise the registry end to end, not to
// ship a pricing library.
func registerBuiltins(r *Registry) {
	r.RegisterPositional("scalar_source", scalarSourceFactory)
	r.RegisterPositional("vector_source", vectorSourceFactory)
	r.RegisterPositional("sum", sumFactory)
	r.RegisterPositional("product", productFactory)
	r.RegisterNamed("diff", []string{"a", "b"}, diffFactory)
	r.RegisterNamed("ratio", []string{"numerator", "denominator"}, ratioFactory)
	r.RegisterNamed("select", []string{"cond", "a", "b"}, selectFactory)
	r.RegisterPositional("vector_element", vectorElementFactory)
	r.RegisterPositional("vector_spread", vectorSpreadFactory)
	r.RegisterPositional("ewma", ewmaFactory)
	r.RegisterPositional("sma", smaFactory)
	r.RegisterPositional("rolling_stddev", rollingStddevFactory)
	r.RegisterNamed("compare", []string{"a", "b"}, compareFactory)
}

func scalarSourceFactory(name string, props map[string]interface{}, _ []ResolvedUpstream) (node.Node, bool, error) {
	initial := propFloat64(props, "initial_value", propFloat64(props, "value", 0))
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	return node.NewScalarSource(name, initial, cutoff), true, nil
}

func vectorSourceFactory(name string, props map[string]interface{}, _ []ResolvedUpstream) (node.Node, bool, error) {
	values := propFloat64Slice(props, "values")
	if values == nil {
		size := propInt(props, "size", 0)
		if size <= 0 {
			return nil, false, &PropertyError{Node: name, Property: "size", Reason: "must be positive when values is absent"}
		}
		values = make([]float64, size)
	}
	headers := propStringSlice(props, "headers")
	tolerance := propFloat64(props, "tolerance", 0)
	n, err := node.NewVectorSource(name, values, headers, tolerance)
	if err != nil {
		return nil, false, fmt.Errorf("graphdef: node %q: %w", name, err)
	}
	return n, true, nil
}

func sumFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	return nAryFactory(name, props, upstreams, func(ins []float64) float64 {
		total := 0.0
		for _, v := range ins {
			total += v
		}
		return total
	})
}

func productFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	return nAryFactory(name, props, upstreams, func(ins []float64) float64 {
		total := 1.0
		for _, v := range ins {
			total *= v
		}
		return total
	})
}

func nAryFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream, combine func([]float64) float64) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	handles := make([]node.ScalarHandle, len(upstreams))
	for i := range upstreams {
		h, err := scalarHandle(name, upstreams, i)
		if err != nil {
			return nil, false, err
		}
		handles[i] = h
	}
	n, err := node.NewNAryComputed(name, handles, combine, cutoff)
	if err != nil {
		return nil, false, err
	}
	return n, false, nil
}

func diffFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	a, err := scalarHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	b, err := scalarHandle(name, upstreams, 1)
	if err != nil {
		return nil, false, err
	}
	n, err := node.NewScalarComputed(name, func() float64 { return a.Scalar() - b.Scalar() }, cutoff)
	return n, false, err
}

func ratioFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	num, err := scalarHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	den, err := scalarHandle(name, upstreams, 1)
	if err != nil {
		return nil, false, err
	}
	n, err := node.NewScalarComputed(name, func() float64 { return num.Scalar() / den.Scalar() }, cutoff)
	return n, false, err
}

func selectFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	cond, err := boolHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	a, err := scalarHandle(name, upstreams, 1)
	if err != nil {
		return nil, false, err
	}
	b, err := scalarHandle(name, upstreams, 2)
	if err != nil {
		return nil, false, err
	}
	n, err := node.NewSelect(name, cond, a, b, cutoff)
	return n, false, err
}

func vectorElementFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	v, err := vectorHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	idx := propInt(props, "index", 0)
	if idx < 0 || idx >= v.VectorSize() {
		return nil, false, &PropertyError{Node: name, Property: "index", Reason: "out of range for the upstream vector"}
	}
	n, err := node.NewScalarComputed(name, func() float64 { return v.VectorAt(idx) }, cutoff)
	return n, false, err
}

func vectorSpreadFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	v, err := vectorHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	ia := propInt(props, "index_a", 0)
	ib := propInt(props, "index_b", 1)
	if ia < 0 || ia >= v.VectorSize() {
		return nil, false, &PropertyError{Node: name, Property: "index_a", Reason: "out of range for the upstream vector"}
	}
	if ib < 0 || ib >= v.VectorSize() {
		return nil, false, &PropertyError{Node: name, Property: "index_b", Reason: "out of range for the upstream vector"}
	}
	n, err := node.NewScalarComputed(name, func() float64 { return v.VectorAt(ib) - v.VectorAt(ia) }, cutoff)
	return n, false, err
}

func ewmaFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	in, err := scalarHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	alpha := propFloat64(props, "alpha", 0.1)
	acc := 0.0
	n, err := node.NewScalarComputed(name, func() float64 {
		acc = alpha*in.Scalar() + (1-alpha)*acc
		return acc
	}, cutoff)
	return n, false, err
}

func smaFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	in, err := scalarHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	window := propInt(props, "window", 1)
	if window <= 0 {
		return nil, false, &PropertyError{Node: name, Property: "window", Reason: "must be positive"}
	}
	buf := make([]float64, window)
	idx, filled := 0, 0
	sum := 0.0
	n, err := node.NewScalarComputed(name, func() float64 {
		x := in.Scalar()
		if filled == window {
			sum -= buf[idx]
		} else {
			filled++
		}
		buf[idx] = x
		sum += x
		idx = (idx + 1) % window
		return sum / float64(filled)
	}, cutoff)
	return n, false, err
}

func rollingStddevFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	cutoff, err := propCutoff(name, props)
	if err != nil {
		return nil, false, err
	}
	in, err := scalarHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	window := propInt(props, "window", 1)
	if window <= 0 {
		return nil, false, &PropertyError{Node: name, Property: "window", Reason: "must be positive"}
	}
	buf := make([]float64, window)
	idx, filled := 0, 0
	n, err := node.NewScalarComputed(name, func() float64 {
		buf[idx] = in.Scalar()
		idx = (idx + 1) % window
		if filled < window {
			filled++
		}
		mean := 0.0
		for i := 0; i < filled; i++ {
			mean += buf[i]
		}
		mean /= float64(filled)
		if filled < 2 {
			return 0
		}
		variance := 0.0
		for i := 0; i < filled; i++ {
			d := buf[i] - mean
			variance += d * d
		}
		variance /= float64(filled - 1)
		return math.Sqrt(variance)
	}, cutoff)
	return n, false, err
}

func compareFactory(name string, props map[string]interface{}, upstreams []ResolvedUpstream) (node.Node, bool, error) {
	a, err := scalarHandle(name, upstreams, 0)
	if err != nil {
		return nil, false, err
	}
	b, err := scalarHandle(name, upstreams, 1)
	if err != nil {
		return nil, false, err
	}
	op := propString(props, "op", "gt")
	var cmp func(x, y float64) bool
	switch op {
	case "gt":
		cmp = func(x, y float64) bool { return x > y }
	case "lt":
		cmp = func(x, y float64) bool { return x < y }
	case "ge":
		cmp = func(x, y float64) bool { return x >= y }
	case "le":
		cmp = func(x, y float64) bool { return x <= y }
	case "eq":
		cmp = func(x, y float64) bool { return x == y }
	case "ne":
		cmp = func(x, y float64) bool { return x != y }
	default:
		return nil, false, &PropertyError{Node: name, Property: "op", Reason: "must be one of gt|lt|ge|le|eq|ne"}
	}
	n, err := node.NewBooleanComputed(name, func() bool { return cmp(a.Scalar(), b.Scalar()) })
	return n, false, err
}
