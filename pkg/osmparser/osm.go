package osmparser

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/server"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

var ValidRoadType = map[string]bool{
	"motorway":       true,
	"trunk":          true,
	"primary":        true,
	"secondary":      true,
	"tertiary":       true,
	"unclassified":   true,
	"residential":    true,
	"motorway_link":  true,
	"trunk_link":     true,
	"primary_link":   true,
	"secondary_link": true,
	"tertiary_link":  true,
	"living_street":  true,
	"road":           true,
	"service":        true,
}

func newBar(max int, desc string, show bool) *progressbar.ProgressBar {
	if !show {
		return progressbar.DefaultSilent(int64(max))
	}
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()), //you should install "github.com/k0kubun/go-ansi"
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

// LoadOSM two passes over a pbf: car ways first, then the coordinates of their nodes. Every way
// node becomes a graph point with its osm id, consecutive nodes are linked with haversine meters.
func LoadOSM(ctx context.Context, r io.ReadSeeker, b Builder, showProgress bool) (Stats, error) {
	scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(0))
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	ways := []*osm.Way{}
	wayNodes := make(map[osm.NodeID]bool)
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || !isOsmWayUsedByCars(way.TagMap()) {
			continue
		}
		ways = append(ways, way)
		for _, n := range way.Nodes {
			wayNodes[n.ID] = true
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return Stats{}, server.WrapErrorf(err, server.ErrBadParamInput, "scan osm ways")
	}
	scanner.Close()

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Stats{}, server.WrapErrorf(err, server.ErrInternalServerError, "rewind osm file")
	}

	coords := make(map[osm.NodeID][2]float64, len(wayNodes))
	scanner = osmpbf.New(ctx, r, runtime.GOMAXPROCS(0))
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok || !wayNodes[node.ID] {
			continue
		}
		coords[node.ID] = [2]float64{node.Lon, node.Lat}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return Stats{}, server.WrapErrorf(err, server.ErrBadParamInput, "scan osm nodes")
	}
	scanner.Close()

	for _, way := range ways {
		for i := range way.Nodes {
			c, ok := coords[way.Nodes[i].ID]
			if !ok {
				continue
			}
			way.Nodes[i].Lon = c[0]
			way.Nodes[i].Lat = c[1]
		}
	}

	bar := newBar(len(ways), "[cyan][1/1][reset] building road graph ...", showProgress)
	st, err := addWays(b, ways, coords, bar)
	if showProgress {
		fmt.Println("")
	}
	if err != nil {
		return st, err
	}
	zap.L().Info("osm graph loaded",
		zap.Int("ways", len(ways)),
		zap.Int("points", st.Points),
		zap.Int("edges", st.Edges))
	return st, nil
}

// addWays adds every node with known coordinates and the edges between consecutive ones.
func addWays(b Builder, ways []*osm.Way, known map[osm.NodeID][2]float64, bar *progressbar.ProgressBar) (Stats, error) {
	st := Stats{}
	for _, way := range ways {
		bar.Add(1)
		forward, backward := wayDirection(way.TagMap())

		var prev *osm.WayNode
		for i := range way.Nodes {
			curr := &way.Nodes[i]
			if known != nil {
				if _, ok := known[curr.ID]; !ok {
					prev = nil
					continue
				}
			}
			id := int64(curr.ID)
			if !b.HasPoint(id) {
				b.AddPoint(id, curr.Lon, curr.Lat)
				st.Points++
			}
			if prev != nil && prev.ID != curr.ID {
				from := geo.NewPoint(int64(prev.ID), prev.Lon, prev.Lat)
				to := geo.NewPoint(id, curr.Lon, curr.Lat)
				dist := geo.HaversineDistance(from, to)
				if forward {
					if _, err := b.AddEdge(from.ID, to.ID, dist); err != nil {
						return st, err
					}
					st.Edges++
				}
				if backward {
					if _, err := b.AddEdge(to.ID, from.ID, dist); err != nil {
						return st, err
					}
					st.Edges++
				}
			}
			prev = curr
		}
	}
	return st, nil
}

// wayDirection which directions a way can be driven in, following the node order.
func wayDirection(tagMap map[string]string) (forward, backward bool) {
	oneway, ok := tagMap["oneway"]
	switch {
	case ok && (oneway == "-1" || oneway == "reverse"):
		return false, true
	case ok && (oneway == "yes" || oneway == "1" || oneway == "true"):
		return true, false
	case ok && oneway == "no":
		return true, true
	}
	if tagMap["junction"] == "roundabout" || tagMap["highway"] == "motorway" {
		return true, false
	}
	return true, true
}

func isOsmWayUsedByCars(tagMap map[string]string) bool {
	highway, okHW := tagMap["highway"]
	if !okHW {
		return false
	}

	motorcar, ok := tagMap["motorcar"]
	if ok && motorcar == "no" {
		return false
	}

	motorVehicle, ok := tagMap["motor_vehicle"]
	if ok && motorVehicle == "no" {
		return false
	}

	access, ok := tagMap["access"]
	if ok {
		if !(access == "yes" || access == "permissive" || access == "designated" || access == "delivery" || access == "destination") {
			return false
		}
	}

	return ValidRoadType[highway]
}
