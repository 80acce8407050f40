package node_test

import (
	"testing"

	"github.com/katalvlaran/stabilize/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarComputed_TracksUpstream(t *testing.T) {
	a := node.NewScalarSource("a", 2.0, node.Exact())
	b := node.NewScalarSource("b", 3.0, node.Exact())
	_, _ = a.Stabilize()
	_, _ = b.Stabilize()

	sum, err := node.NewScalarComputed("sum", func() float64 { return a.Scalar() + b.Scalar() }, node.Exact())
	require.NoError(t, err)

	changed, err := sum.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 5.0, sum.Scalar())

	changed, err = sum.Stabilize()
	require.NoError(t, err)
	assert.False(t, changed, "same inputs should not report changed again")
}

func TestScalarComputed_NilKernel(t *testing.T) {
	_, err := node.NewScalarComputed("x", nil, node.Exact())
	assert.ErrorIs(t, err, node.ErrNilKernel)
}

func TestVectorComputed_NoAllocationBuffer(t *testing.T) {
	src, err := node.NewVectorSource("v", []float64{1, 2, 3}, nil, 0)
	require.NoError(t, err)
	_, _ = src.Stabilize()

	doubled, err := node.NewVectorComputed("doubled", 3, func(buf []float64) {
		for i := 0; i < src.VectorSize(); i++ {
			buf[i] = src.VectorAt(i) * 2
		}
	}, 1e-9, nil)
	require.NoError(t, err)

	changed, err := doubled.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2.0, doubled.VectorAt(0))
	assert.Equal(t, 6.0, doubled.VectorAt(2))
}

func TestBooleanComputed_ChangedOnFirstRunThenOnlyOnFlip(t *testing.T) {
	v := false
	b, err := node.NewBooleanComputed("flag", func() bool { return v })
	require.NoError(t, err)

	changed, err := b.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed, "first run always reports changed")

	changed, err = b.Stabilize()
	require.NoError(t, err)
	assert.False(t, changed, "unchanged value should not re-report")

	v = true
	changed, err = b.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestNAryComputed_GathersWithoutPerCallAllocationSemantics(t *testing.T) {
	a := node.NewScalarSource("a", 1, node.Exact())
	b := node.NewScalarSource("b", 2, node.Exact())
	c := node.NewScalarSource("c", 3, node.Exact())
	for _, s := range []*node.ScalarSourceNode{a, b, c} {
		_, _ = s.Stabilize()
	}

	total, err := node.NewNAryComputed("total", []node.ScalarHandle{a, b, c}, func(ins []float64) float64 {
		sum := 0.0
		for _, x := range ins {
			sum += x
		}
		return sum
	}, node.Exact())
	require.NoError(t, err)

	changed, err := total.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 6.0, total.Scalar())
}

func TestSelect_ReadsBothBranches(t *testing.T) {
	cond := false
	condNode, err := node.NewBooleanComputed("cond", func() bool { return cond })
	require.NoError(t, err)
	_, _ = condNode.Stabilize()

	aReads, bReads := 0, 0
	a, err := node.NewScalarComputed("a", func() float64 { return 10 }, node.Exact())
	require.NoError(t, err)
	b, err := node.NewScalarComputed("b", func() float64 { return 20 }, node.Exact())
	require.NoError(t, err)
	_, _ = a.Stabilize()
	_, _ = b.Stabilize()

	countA := scalarFunc(func() float64 { aReads++; return a.Scalar() })
	countB := scalarFunc(func() float64 { bReads++; return b.Scalar() })
	sel, err := node.NewSelect("sel", condNode, countA, countB, node.Exact())
	require.NoError(t, err)

	changed, err := sel.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 20.0, sel.Scalar(), "cond is false, so branch b wins")
	assert.Equal(t, 1, aReads, "select is not short-circuited: branch a is still read")
	assert.Equal(t, 1, bReads)
}

// scalarFunc adapts a func into a node.ScalarHandle, so a test can count
// how often a consumer reads through the handle.
type scalarFunc func() float64

func (f scalarFunc) Scalar() float64 { return f() }
