package snapshot_test

import (
	"testing"

	"github.com/katalvlaran/stabilize/engine"
	"github.com/katalvlaran/stabilize/node"
	"github.com/katalvlaran/stabilize/snapshot"
	"github.com/katalvlaran/stabilize/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T) (*topology.Topology, *engine.Engine, *node.ScalarSourceNode) {
	t.Helper()
	a := node.NewScalarSource("A", 1.5, node.Exact())
	b, err := node.NewScalarComputed("B", func() float64 { return a.Scalar() * 2 }, node.Exact())
	require.NoError(t, err)

	bld := topology.NewBuilder()
	require.NoError(t, bld.AddNode(a, true))
	require.NoError(t, bld.AddNode(b, false, "A"))
	topo, err := bld.Build()
	require.NoError(t, err)

	eng, err := engine.NewEngine(topo)
	require.NoError(t, err)
	return topo, eng, a
}

func TestSnapshot_RoundTripAfterStabilize(t *testing.T) {
	topo, eng, a := buildGraph(t)
	a.Update(3.0)
	eng.Stabilize()

	snap, err := snapshot.Capture(eng, topo)
	require.NoError(t, err)
	assert.Equal(t, eng.Epoch(), snap.Epoch())

	topo2, eng2, _ := buildGraph(t)
	require.NoError(t, snapshot.Restore(snap.Bytes(), topo2, eng2))
	assert.Equal(t, eng.Epoch(), eng2.Epoch())

	eng2.Stabilize()
	idxA, _ := topo2.TopoIndex("A")
	idxB, _ := topo2.TopoIndex("B")
	aHandle := topo2.Node(idxA).(node.ScalarHandle)
	bHandle := topo2.Node(idxB).(node.ScalarHandle)
	assert.Equal(t, 3.0, aHandle.Scalar())
	assert.Equal(t, 6.0, bHandle.Scalar())
}

func TestSnapshot_SizeMismatchRejected(t *testing.T) {
	topo, eng, _ := buildGraph(t)
	eng.Stabilize()

	err := snapshot.Restore([]byte{1, 2, 3}, topo, eng)
	assert.ErrorIs(t, err, snapshot.ErrSizeMismatch)
}

func TestSnapshot_ChecksumRoundTrip(t *testing.T) {
	topo, eng, _ := buildGraph(t)
	eng.Stabilize()

	snap, err := snapshot.Capture(eng, topo)
	require.NoError(t, err)

	withSum := snap.BytesWithChecksum()
	payload, err := snapshot.VerifyChecksum(withSum)
	require.NoError(t, err)
	assert.Equal(t, snap.Bytes(), payload)

	withSum[0] ^= 0xFF // corrupt the epoch byte
	_, err = snapshot.VerifyChecksum(withSum)
	assert.ErrorIs(t, err, snapshot.ErrChecksumMismatch)
}
