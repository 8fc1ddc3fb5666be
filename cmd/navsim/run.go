package main

import (
	"encoding/json"
	"os"

	"lintang/congestionnav/pkg/simulation"
	"lintang/congestionnav/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	var (
		noProgress bool
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "play simulation rounds headless and report per-agent metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := loadGraph(ctx, cfg, !noProgress)
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

			sim := simulation.New(g, simulationConfig(cfg, !noProgress))
			results, err := sim.Run(ctx, cfg.Simulation.Rounds)
			if len(results) > 0 && db != nil {
				if serr := db.SaveRounds(results); serr != nil {
					zap.L().Warn("failed to save rounds", zap.Error(serr))
				}
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			logSummary(results)
			return nil
		},
	}
	cmd.Flags().Int("simulation.rounds", 0, "number of rounds")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "hide progress bars")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print round results as json")
	return cmd
}

// logSummary rata-rata metrics per tipe agent.
func logSummary(results []simulation.RoundResult) {
	type agg struct {
		n, arrived, replans int
		dist                float64
		ns                  int64
	}
	byType := map[string]*agg{}
	order := []string{}
	for _, r := range results {
		for _, am := range r.Agents {
			a, ok := byType[am.Type]
			if !ok {
				a = &agg{}
				byType[am.Type] = a
				order = append(order, am.Type)
			}
			a.n++
			a.dist += am.Dist
			a.replans += am.Replans
			a.ns += am.ProcessTimeNs
			if am.Arrived {
				a.arrived++
			}
		}
	}
	for _, typ := range order {
		a := byType[typ]
		zap.L().Info("agent summary",
			zap.String("type", typ),
			zap.Int("rounds", a.n),
			zap.Int("arrived", a.arrived),
			zap.Float64("avg_dist_m", util.RoundFloat(a.dist/float64(a.n), 2)),
			zap.Float64("avg_replans", util.RoundFloat(float64(a.replans)/float64(a.n), 2)),
			zap.Int64("avg_process_ns", a.ns/int64(a.n)))
	}
}
