package listener_test

import (
	"testing"
	"time"

	"github.com/katalvlaran/stabilize/listener"
	"github.com/stretchr/testify/assert"
)

func TestStatsListener_AccumulatesAcrossEpochs(t *testing.T) {
	s := listener.NewStatsListener()

	s.OnStabilizationStart(1)
	s.OnNodeStabilized(1, 0, "A", true, 5*time.Millisecond)
	s.OnNodeStabilized(1, 1, "B", false, 2*time.Millisecond)
	s.OnStabilizationEnd(1, 2)

	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.Epochs)
	assert.Equal(t, uint64(2), snap.NodesVisited)
	assert.Equal(t, uint64(1), snap.NodesChanged)
	assert.Equal(t, uint64(0), snap.NodeErrors)
	assert.Equal(t, 2, snap.LastNodeCount)

	s.OnStabilizationStart(2)
	s.OnNodeError(2, 2, "C", assert.AnError)
	s.OnStabilizationEnd(2, 1)

	snap = s.Snapshot()
	assert.Equal(t, uint64(2), snap.Epochs)
	assert.Equal(t, uint64(1), snap.NodeErrors)
	assert.Equal(t, []string{"C"}, snap.LastErrorNames)
}
