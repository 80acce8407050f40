package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/katalvlaran/stabilize/engine"
	"github.com/katalvlaran/stabilize/node"
	"github.com/katalvlaran/stabilize/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingListener captures every callback it receives, in order, for
// assertions on call shape and sequencing.
type recordingListener struct {
	starts []uint64
	ends   []int
	nodes  []string
	errs   []string
}

func (r *recordingListener) OnStabilizationStart(epoch uint64) {
	r.starts = append(r.starts, epoch)
}
func (r *recordingListener) OnNodeStabilized(_ uint64, _ int, name string, _ bool, _ time.Duration) {
	r.nodes = append(r.nodes, name)
}
func (r *recordingListener) OnNodeError(_ uint64, _ int, name string, _ error) {
	r.errs = append(r.errs, name)
}
func (r *recordingListener) OnStabilizationEnd(_ uint64, count int) {
	r.ends = append(r.ends, count)
}

func buildChain(t *testing.T) (*topology.Topology, *node.ScalarSourceNode) {
	t.Helper()
	a := node.NewScalarSource("A", 1, node.Exact())
	b, err := node.NewScalarComputed("B", func() float64 { return a.Scalar() * 2 }, node.Exact())
	require.NoError(t, err)
	c, err := node.NewScalarComputed("C", func() float64 { return b.Scalar() + 1 }, node.Exact())
	require.NoError(t, err)

	bld := topology.NewBuilder()
	require.NoError(t, bld.AddNode(a, true))
	require.NoError(t, bld.AddNode(b, false, "A"))
	require.NoError(t, bld.AddNode(c, false, "B"))
	topo, err := bld.Build()
	require.NoError(t, err)
	return topo, a
}

func TestEngine_FirstStabilizeVisitsEveryNode(t *testing.T) {
	topo, _ := buildChain(t)
	e, err := engine.NewEngine(topo)
	require.NoError(t, err)

	l := &recordingListener{}
	e.SetListener(l)

	count := e.Stabilize()
	assert.Equal(t, 3, count)
	assert.Equal(t, []string{"A", "B", "C"}, l.nodes)
	assert.Equal(t, []uint64{1}, l.starts)
	assert.Equal(t, []int{3}, l.ends)
}

func TestEngine_SecondStabilizeWithNoChangeVisitsNothing(t *testing.T) {
	topo, _ := buildChain(t)
	e, err := engine.NewEngine(topo)
	require.NoError(t, err)
	e.Stabilize()

	count := e.Stabilize()
	assert.Equal(t, 0, count, "no source updated, nothing should be dirty")
	assert.Equal(t, uint64(2), e.Epoch())
}

func TestEngine_SourceUpdatePropagatesForward(t *testing.T) {
	topo, a := buildChain(t)
	e, err := engine.NewEngine(topo)
	require.NoError(t, err)
	e.Stabilize()

	a.Update(5)
	require.NoError(t, e.MarkDirtyName("A"))
	count := e.Stabilize()
	assert.Equal(t, 3, count, "A, B, C should all recompute since every downstream value changes")
}

func TestEngine_NodeErrorDoesNotPropagateDirty(t *testing.T) {
	a := node.NewScalarSource("A", 1, node.Exact())
	failing := &alwaysErrNode{name: "Bad"}
	c, err := node.NewScalarComputed("C", func() float64 { return a.Scalar() }, node.Exact())
	require.NoError(t, err)

	bld := topology.NewBuilder()
	require.NoError(t, bld.AddNode(a, true))
	require.NoError(t, bld.AddNode(failing, false, "A"))
	require.NoError(t, bld.AddNode(c, false, "Bad"))
	topo, err := bld.Build()
	require.NoError(t, err)

	e, err := engine.NewEngine(topo)
	require.NoError(t, err)
	l := &recordingListener{}
	e.SetListener(l)

	e.Stabilize()
	assert.Equal(t, []string{"Bad"}, l.errs)
	assert.NotContains(t, l.nodes, "C", "C must not be marked dirty when its only upstream errors")
}

func TestEngine_EventCounters(t *testing.T) {
	topo, a := buildChain(t)
	e, err := engine.NewEngine(topo)
	require.NoError(t, err)
	e.Stabilize()
	assert.Equal(t, uint64(0), e.LastEpochEvents())

	e.NoteEvent()
	e.NoteEvent()
	a.Update(9)
	require.NoError(t, e.MarkDirtyName("A"))
	e.Stabilize()
	assert.Equal(t, uint64(2), e.LastEpochEvents())
	assert.Equal(t, uint64(2), e.TotalEventsProcessed())
}

func TestEngine_MarkDirtyOutOfRange(t *testing.T) {
	topo, _ := buildChain(t)
	e, err := engine.NewEngine(topo)
	require.NoError(t, err)
	assert.ErrorIs(t, e.MarkDirty(99), engine.ErrIndexOutOfRange)
	assert.ErrorIs(t, e.MarkDirtyName("nope"), engine.ErrUnknownName)
}

func TestEngine_NilTopology(t *testing.T) {
	_, err := engine.NewEngine(nil)
	assert.ErrorIs(t, err, engine.ErrNilTopology)
}

// alwaysErrNode is a minimal node.Node that always fails, for error-path
// coverage without pulling in the computed-node kernel machinery.
type alwaysErrNode struct{ name string }

func (n *alwaysErrNode) Name() string            { return n.name }
func (n *alwaysErrNode) Stabilize() (bool, error) { return false, errors.New("boom") }
