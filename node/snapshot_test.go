package node_test

import (
	"testing"

	"github.com/katalvlaran/stabilize/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarSourceSnapshotRoundTrip(t *testing.T) {
	s := node.NewScalarSource("X", 42.5, node.Exact())
	_, _ = s.Stabilize()

	buf := make([]byte, s.SnapshotSizeBytes())
	n, err := s.SnapshotTo(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	dst := node.NewScalarSource("X", 0, node.Exact())
	n, err = dst.RestoreFrom(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 42.5, dst.Scalar())
}

func TestScalarSourceSnapshotUnderrun(t *testing.T) {
	s := node.NewScalarSource("X", 1, node.Exact())
	buf := make([]byte, 4)
	_, err := s.SnapshotTo(buf, 0)
	assert.ErrorIs(t, err, node.ErrSnapshotUnderrun)
	_, err = s.RestoreFrom(buf, 0)
	assert.ErrorIs(t, err, node.ErrSnapshotUnderrun)
}

func TestVectorSourceSnapshotRoundTrip(t *testing.T) {
	v, err := node.NewVectorSource("V", []float64{1.5, 2.5, 3.5}, nil, 0)
	require.NoError(t, err)
	_, _ = v.Stabilize()

	buf := make([]byte, v.SnapshotSizeBytes())
	_, err = v.SnapshotTo(buf, 0)
	require.NoError(t, err)

	dst, err := node.NewVectorSource("V", []float64{0, 0, 0}, nil, 0)
	require.NoError(t, err)
	_, err = dst.RestoreFrom(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, dst.VectorAt(0))
	assert.Equal(t, 3.5, dst.VectorAt(2))
}
