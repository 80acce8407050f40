package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/katalvlaran/stabilize/engine"
	"github.com/katalvlaran/stabilize/graphdef"
	"github.com/katalvlaran/stabilize/intake"
	"github.com/katalvlaran/stabilize/listener"
	"github.com/katalvlaran/stabilize/topology"
)

// compiled bundles one compile's output: an engine.Engine and the
// topology.Topology it was built over.
type compiled struct {
	eng  *engine.Engine
	topo *topology.Topology
}

func compileGraph(path string) (*compiled, error) {
	def, err := graphdef.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}
	eng, topo, err := graphdef.Compile(def, graphdef.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("compiling graph: %w", err)
	}
	return &compiled{eng: eng, topo: topo}, nil
}

func runDemo(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	active, err := compileGraph(cfg.GraphPath)
	if err != nil {
		return err
	}

	stats := listener.NewStatsListener()

	var reload chan *compiled
	if cfg.Watch {
		reload = make(chan *compiled, 1)
		go watchGraph(ctx, cfg, logger, reload)
	}

	// Each iteration runs one full consumer/producer session against
	// active. A reload tears the session down and restarts it against the
	// freshly compiled graph; anything else ends the run.
	for {
		slogL := listener.NewSlogListener(logger, false, 2, 5)
		active.eng.SetListener(engine.NewCompositeListener(func(child int, err error) {
			logger.Error("listener panicked", slog.Int("child", child), slog.String("error", err.Error()))
		}, slogL, stats))
		active.eng.Stabilize() // initial flush

		sessionCtx, cancelSession := context.WithCancel(ctx)
		q := intake.NewQueue(cfg.QueueSize)
		onErr := func(seq uint64, err error) {
			logger.Warn("dropping event", slog.Uint64("sequence", seq), slog.String("error", err.Error()))
		}
		consumer := intake.NewConsumer(q, active.eng, active.topo, onErr)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(sessionCtx); err != nil && sessionCtx.Err() == nil {
				logger.Error("consumer exited", slog.String("error", err.Error()))
			}
		}()

		producersDone := make(chan struct{})
		go func() {
			defer close(producersDone)
			runProducers(sessionCtx, cfg, logger, q, active.topo)
		}()

		var next *compiled
		select {
		case <-producersDone:
		case next = <-reload:
			logger.Info("hot reload applied", slog.String("path", cfg.GraphPath))
		case <-ctx.Done():
		}

		cancelSession()
		q.Close()
		wg.Wait()
		<-producersDone

		if next == nil {
			break
		}
		active = next
	}

	snap := stats.Snapshot()
	logger.Info("run complete",
		slog.Uint64("epochs", snap.Epochs),
		slog.Uint64("nodes_visited", snap.NodesVisited),
		slog.Uint64("nodes_changed", snap.NodesChanged),
		slog.Uint64("node_errors", snap.NodeErrors),
	)
	return nil
}

// runProducers spawns cfg.Producers goroutines, each pushing cfg.Cycles
// batches of random updates to the graph's scalar sources, stamping each
// batch with a uuid correlation id for log correlation.
func runProducers(ctx context.Context, cfg *Config, logger *slog.Logger, q *intake.Queue, topo *topology.Topology) {
	sourceIdx := make([]int, 0, topo.NodeCount())
	for i := 0; i < topo.NodeCount(); i++ {
		if _, scalar := topo.Node(i).(interface{ Update(float64) }); scalar && topo.IsSource(i) {
			sourceIdx = append(sourceIdx, i)
		}
	}
	if len(sourceIdx) == 0 {
		return
	}

	var wg sync.WaitGroup
	var seq uint64
	var seqMu sync.Mutex
	nextSeq := func() uint64 {
		seqMu.Lock()
		defer seqMu.Unlock()
		seq++
		return seq
	}

	for p := 0; p < cfg.Producers; p++ {
		wg.Add(1)
		go func(producerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(producerID) + 1))
			for cycle := 0; cycle < cfg.Cycles; cycle++ {
				if ctx.Err() != nil {
					return
				}
				batchID := uuid.NewString()
				idx := sourceIdx[rng.Intn(len(sourceIdx))]
				ev := intake.UpdateEvent{
					NodeIndex:   int32(idx),
					Value:       rng.NormFloat64(),
					VectorIndex: -1,
					BatchEnd:    true,
					Sequence:    nextSeq(),
				}
				if err := q.Enqueue(ctx, ev); err != nil {
					return
				}
				logger.Debug("batch enqueued", slog.String("batch_id", batchID), slog.Int("producer", producerID))
				time.Sleep(time.Millisecond)
			}
		}(p)
	}
	wg.Wait()
}

// watchGraph recompiles cfg.GraphPath on every filesystem write or create
// event and sends the freshly compiled graph to reload. It does not touch any
// running engine/topology itself — the caller decides when and how to
// swap the active session onto the new graph. This is cmd-only, outside
// the core packages' import graph.
func watchGraph(ctx context.Context, cfg *Config, logger *slog.Logger, reload chan<- *compiled) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("fsnotify init failed", slog.String("error", err.Error()))
		return
	}
	defer w.Close()

	if err := w.Add(cfg.GraphPath); err != nil {
		logger.Error("watching graph file failed", slog.String("error", err.Error()))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			next, err := compileGraph(cfg.GraphPath)
			if err != nil {
				logger.Error("hot reload failed", slog.String("error", err.Error()))
				continue
			}
			select {
			case reload <- next:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Error("fsnotify error", slog.String("error", err.Error()))
		}
	}
}
