package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lintang/congestionnav/pkg/server/rest"
	"lintang/congestionnav/pkg/server/rest/service"
	"lintang/congestionnav/pkg/simulation"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the navigation api while the simulation runs live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	cmd.Flags().String("server.listen_addr", "", "server listen address")
	cmd.Flags().Duration("simulation.tick_interval", 0, "wall time between ticks, 0 means step only through the api")
	return cmd
}

func serve(ctx context.Context) error {
	g, err := loadGraph(ctx, cfg, true)
	if err != nil {
		return err
	}

	db, err := openStorage(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sim := simulation.New(g, simulationConfig(cfg, false), simulation.WithMetrics(simulation.NewMetrics(reg)))
	if err := sim.NewRound(ctx); err != nil {
		return err
	}

	var svc *service.NavigationService
	if db != nil {
		svc = service.NewNavigationService(sim, db, cfg.Obstacle.HexRadius)
	} else {
		svc = service.NewNavigationService(sim, nil, cfg.Obstacle.HexRadius)
	}

	r := rest.NewRouter(svc, reg, "http://localhost"+cfg.Server.ListenAddr+"/swagger/doc.json")
	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: r}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		zap.L().Info("server started", zap.String("addr", cfg.Server.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.Simulation.TickInterval > 0 {
		eg.Go(func() error {
			return tickLoop(ctx, sim, svc, cfg.Simulation.TickInterval)
		})
	}

	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// tickLoop steps the live simulation every interval; a finished round is stored and replaced.
func tickLoop(ctx context.Context, sim *simulation.Simulation, svc *service.NavigationService, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if sim.Done() {
			if _, err := svc.NewRound(ctx); err != nil {
				zap.L().Warn("failed to start new round", zap.Error(err))
			}
			continue
		}
		if err := sim.Step(); err != nil {
			zap.L().Warn("simulation step failed", zap.Error(err))
		}
	}
}
