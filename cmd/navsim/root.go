package main

import (
	"context"
	"fmt"
	"os"

	"lintang/congestionnav/pkg/config"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/kv"
	"lintang/congestionnav/pkg/observability"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/osmparser"
	"lintang/congestionnav/pkg/simulation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "navsim",
	Short:         "congestion-aware navigation simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.NewViper()
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if err := config.ReadFile(v, cfgFile); err != nil {
			return err
		}
		loaded, err := config.Load(v)
		if err != nil {
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "navsim"})
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = loaded

		observability.InitializeLogger(cfg.Logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		observability.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("graph.file", "", "road network file, plain text or .osm.pbf")
	rootCmd.PersistentFlags().String("graph.format", "", "graph file format: plain, osm or auto")
	rootCmd.PersistentFlags().Uint64("simulation.seed", 0, "seed for obstacles and agent pairs")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRouteCmd())
}

// Execute runs the root command with ctx, cancelled on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if ctx.Err() == nil {
			observability.GetLogger().Error("command failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func motionConfig(c *config.Config) obstacle.MotionConfig {
	return obstacle.MotionConfig{
		MaxMoveDistance: c.Obstacle.MaxMoveDistance,
		Inertia:         c.Obstacle.Inertia,
		Acceleration:    c.Obstacle.Acceleration,
		MaxAttempts:     c.Obstacle.MaxAttempts,
	}
}

func simulationConfig(c *config.Config, showProgress bool) simulation.Config {
	return simulation.Config{
		ObstacleCount:   c.Obstacle.Count,
		HexRadius:       c.Obstacle.HexRadius,
		AgentSpeed:      c.Agent.Speed,
		MaxPairAttempts: c.Agent.MaxPairAttempts,
		MaxTicks:        c.Simulation.MaxTicks,
		ShowProgress:    showProgress,
	}
}

// loadGraph builds the dynamic graph from graph.file.
func loadGraph(ctx context.Context, c *config.Config, showProgress bool) (*graph.DynamicGraph, error) {
	g := graph.NewDynamicGraph(c.Graph.CellSize, motionConfig(c), c.Simulation.Seed)
	stats, err := osmparser.LoadFile(ctx, c.Graph.File, c.Graph.Format, g, showProgress)
	if err != nil {
		return nil, err
	}
	g.BuildIndex()
	zap.L().Info("graph loaded",
		zap.String("file", c.Graph.File),
		zap.Int("points", stats.Points),
		zap.Int("edges", stats.Edges),
		zap.Int("cells", g.Grid().Len()))
	return g, nil
}

// openStorage nil when storage.path is empty.
func openStorage(c *config.Config) (*kv.KVDB, error) {
	if c.Storage.Path == "" {
		return nil, nil
	}
	return kv.Open(c.Storage.Path)
}
