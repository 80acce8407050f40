package node_test

import (
	"testing"

	"github.com/katalvlaran/stabilize/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarSource_FirstStabilizeAlwaysChanged(t *testing.T) {
	s := node.NewScalarSource("X", 1.0, node.Exact())
	changed, err := s.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1.0, s.Scalar())
}

func TestScalarSource_UpdateThenStabilize(t *testing.T) {
	s := node.NewScalarSource("X", 1.0, node.Absolute(1e-6))
	_, _ = s.Stabilize()

	s.Update(1.0 + 1e-9)
	changed, err := s.Stabilize()
	require.NoError(t, err)
	assert.False(t, changed, "delta below tolerance should not propagate")

	s.Update(2.0)
	changed, err = s.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2.0, s.Scalar())
}

func TestVectorSource_ConstructionErrors(t *testing.T) {
	_, err := node.NewVectorSource("V", nil, nil, 0)
	assert.ErrorIs(t, err, node.ErrInvalidSize)

	_, err = node.NewVectorSource("V", []float64{1, 2}, []string{"only-one"}, 0)
	assert.ErrorIs(t, err, node.ErrHeaderCountMismatch)
}

func TestVectorSource_UpdateAtAndUpdateAll(t *testing.T) {
	v, err := node.NewVectorSource("V", []float64{1, 2, 3}, []string{"a", "b", "c"}, 1e-9)
	require.NoError(t, err)
	_, _ = v.Stabilize()

	require.NoError(t, v.UpdateAt(1, 20))
	changed, err := v.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 20.0, v.VectorAt(1))

	assert.ErrorIs(t, v.UpdateAt(10, 0), node.ErrIndexOutOfRange)
	assert.ErrorIs(t, v.UpdateAll([]float64{1, 2}), node.ErrInvalidSize)

	require.NoError(t, v.UpdateAll([]float64{1, 20, 99}))
	changed, err = v.Stabilize()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"a", "b", "c"}, v.Headers())
}

func TestVectorSource_ToleranceSuppression(t *testing.T) {
	v, err := node.NewVectorSource("V", []float64{1, 1, 1}, nil, 0.5)
	require.NoError(t, err)
	_, _ = v.Stabilize()

	require.NoError(t, v.UpdateAt(0, 1.1))
	changed, err := v.Stabilize()
	require.NoError(t, err)
	assert.False(t, changed)
}
