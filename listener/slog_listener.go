// Package listener provides ready-to-wire engine.Listener implementations:
// a structured slog logger and a cheap counters collector. Neither is
// required by engine.Engine itself — both are adapters an operator plugs
// in via engine.Engine.SetListener or engine.CompositeListener.
//
// Grounded on dag.Executor's logging idiom (AleutianLocal
// services/trace/dag/executor.go): slog.Logger with structured
// slog.String/slog.Duration attributes at Debug/Info/Warn/Error levels,
// adapted from a per-pipeline-run logger to a per-stabilization-epoch one.
package listener

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/stabilize/engine"
	"golang.org/x/time/rate"
)

// SlogListener logs every stabilization lifecycle event through a
// *slog.Logger. Node-level Info logs are expected to be extremely
// frequent (one per dirty node per epoch, potentially per event); error
// logs are rate-limited independently so a persistently failing node
// cannot flood the log.
type SlogListener struct {
	log          *slog.Logger
	errorLimiter *rate.Limiter
	logNodes     bool
}

// NewSlogListener builds a SlogListener writing to log. If log is nil,
// slog.Default() is used. logNodes controls whether per-node Info logs
// are emitted at all (disable for high-frequency graphs where only
// epoch-level and error-level logging is wanted); errors are always
// logged, rate-limited to at most ratePerSecond per second with a burst
// of burst.
func NewSlogListener(log *slog.Logger, logNodes bool, ratePerSecond float64, burst int) *SlogListener {
	if log == nil {
		log = slog.Default()
	}
	return &SlogListener{
		log:          log,
		errorLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		logNodes:     logNodes,
	}
}

func (s *SlogListener) OnStabilizationStart(epoch uint64) {
	s.log.Debug("stabilization started", slog.Uint64("epoch", epoch))
}

func (s *SlogListener) OnNodeStabilized(epoch uint64, topoIndex int, name string, changed bool, duration time.Duration) {
	if !s.logNodes {
		return
	}
	s.log.Info("node stabilized",
		slog.Uint64("epoch", epoch),
		slog.Int("topo_index", topoIndex),
		slog.String("node", name),
		slog.Bool("changed", changed),
		slog.Duration("duration", duration),
	)
}

func (s *SlogListener) OnNodeError(epoch uint64, topoIndex int, name string, err error) {
	if !s.errorLimiter.Allow() {
		return
	}
	s.log.Error("node stabilize failed",
		slog.Uint64("epoch", epoch),
		slog.Int("topo_index", topoIndex),
		slog.String("node", name),
		slog.String("error", err.Error()),
	)
}

func (s *SlogListener) OnStabilizationEnd(epoch uint64, count int) {
	s.log.Debug("stabilization ended", slog.Uint64("epoch", epoch), slog.Int("nodes_visited", count))
}

var _ engine.Listener = (*SlogListener)(nil)
