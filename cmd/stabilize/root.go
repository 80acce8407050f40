package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()

	root := &cobra.Command{
		Use:   "stabilize",
		Short: "Run a declarative dependency-graph stabilization engine",
		Long: `stabilize loads a graph definition (JSON or YAML), compiles it into a
stabilization engine, and drives it with a demo intake loop, logging a
summary line when the run ends.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := parseLevel(cfg.LogLevel)
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return runDemo(cmd.Context(), cfg, logger)
		},
	}

	root.Flags().StringVarP(&cfg.GraphPath, "graph", "g", "", "path to the graph definition file (.json/.yaml)")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	root.Flags().BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "hot-reload the graph definition on change")
	root.Flags().IntVar(&cfg.Producers, "producers", cfg.Producers, "number of synthetic producer goroutines")
	root.Flags().IntVar(&cfg.Cycles, "cycles", cfg.Cycles, "number of batches each producer emits before exiting")
	root.Flags().IntVar(&cfg.QueueSize, "queue-size", cfg.QueueSize, "intake queue capacity")
	_ = root.MarkFlagRequired("graph")

	return root
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
