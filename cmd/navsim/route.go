package main

import (
	"fmt"
	"os"

	"lintang/congestionnav/pkg/datastructure"
	"lintang/congestionnav/pkg/server"
	"lintang/congestionnav/pkg/util"

	"github.com/spf13/cobra"
)

func newRouteCmd() *cobra.Command {
	var (
		from, to  int64
		obstacles int
		avoid     bool
	)
	cmd := &cobra.Command{
		Use:   "route",
		Short: "shortest path between two point ids, optionally around random obstacles",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraph(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			if !g.HasPoint(from) || !g.HasPoint(to) {
				return server.WrapErrorf(nil, server.ErrBadParamInput, "unknown point id %d or %d", from, to)
			}
			for i := 0; i < obstacles; i++ {
				if _, ok := g.GenerateHex(cfg.Obstacle.HexRadius); !ok {
					return server.WrapErrorf(nil, server.ErrNotFound, "no populated cell for an obstacle")
				}
			}

			var (
				path []int64
				safe = true
			)
			if avoid {
				path, safe = g.FindPathAvoidingPolygons(from, to)
			} else {
				path = g.FindPathAStar(from, to)
			}
			if len(path) == 0 {
				fmt.Fprintf(os.Stdout, "no path from %d to %d\n", from, to)
				return nil
			}

			fmt.Fprintf(os.Stdout, "path: %d", from)
			for _, id := range path {
				fmt.Fprintf(os.Stdout, " -> %d", id)
			}
			fmt.Fprintln(os.Stdout)
			fmt.Fprintf(os.Stdout, "distance: %.2f m\n", util.RoundFloat(g.PathDistance(from, path), 2))
			fmt.Fprintf(os.Stdout, "polyline: %s\n", datastructure.RenderPath(g.PathPoints(from, path)))
			if avoid && !safe {
				fmt.Fprintln(os.Stdout, "warning: no obstacle-free path, plain shortest path returned")
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&from, "from", 0, "start point id")
	cmd.Flags().Int64Var(&to, "to", 0, "goal point id")
	cmd.Flags().IntVar(&obstacles, "obstacles", 0, "random hexagon obstacles to place first")
	cmd.Flags().BoolVar(&avoid, "avoid", false, "route around obstacles")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
