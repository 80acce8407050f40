package listener

import (
	"sync"
	"time"

	"github.com/katalvlaran/stabilize/engine"
)

// Stats is a point-in-time snapshot of the counters StatsListener
// accumulates across every epoch it observes.
type Stats struct {
	Epochs         uint64
	NodesVisited   uint64
	NodesChanged   uint64
	NodeErrors     uint64
	TotalDuration  time.Duration
	LastEpoch      uint64
	LastNodeCount  int
	LastErrorNames []string
}

// StatsListener accumulates cheap counters across the lifetime of an
// engine.Engine, for periodic reporting (e.g. the CLI's summary line).
// It is safe for concurrent reads via Snapshot while the engine drives
// writes from its own goroutine.
type StatsListener struct {
	mu    sync.Mutex
	stats Stats
}

// NewStatsListener constructs an empty StatsListener.
func NewStatsListener() *StatsListener {
	return &StatsListener{}
}

func (s *StatsListener) OnStabilizationStart(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.LastEpoch = epoch
	s.stats.LastErrorNames = s.stats.LastErrorNames[:0]
}

func (s *StatsListener) OnNodeStabilized(_ uint64, _ int, _ string, changed bool, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.NodesVisited++
	s.stats.TotalDuration += duration
	if changed {
		s.stats.NodesChanged++
	}
}

func (s *StatsListener) OnNodeError(_ uint64, _ int, name string, _ error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.NodeErrors++
	s.stats.LastErrorNames = append(s.stats.LastErrorNames, name)
}

func (s *StatsListener) OnStabilizationEnd(epoch uint64, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.Epochs++
	s.stats.LastEpoch = epoch
	s.stats.LastNodeCount = count
}

// Snapshot returns a copy of the current counters.
func (s *StatsListener) Snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stats
	out.LastErrorNames = append([]string(nil), s.stats.LastErrorNames...)
	return out
}

var _ engine.Listener = (*StatsListener)(nil)
