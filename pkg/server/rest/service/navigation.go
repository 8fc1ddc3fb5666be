package service

import (
	"context"

	"lintang/congestionnav/pkg/datastructure"
	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/server"
	"lintang/congestionnav/pkg/simulation"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type Simulation interface {
	View(fn func(g *graph.DynamicGraph) error) error
	Update(fn func(g *graph.DynamicGraph) error) error
	Snapshot() simulation.State
	Step() error
	NewRound(ctx context.Context) error
	Result() (simulation.RoundResult, error)
}

type KVDB interface {
	SaveRounds(results []simulation.RoundResult) error
	GetRoundsNear(lat, lon, radiusKm float64) ([]simulation.RoundResult, error)
}

type NavigationService struct {
	sim       Simulation
	kv        KVDB
	hexRadius float64
}

// NewNavigationService kv may be nil, round results are then not persisted.
func NewNavigationService(sim Simulation, kv KVDB, hexRadius float64) *NavigationService {
	return &NavigationService{sim: sim, kv: kv, hexRadius: hexRadius}
}

type GraphInfo struct {
	Bounds    datastructure.Bounds
	NumPoints int
	NumEdges  int
	NumCells  int
	CellSize  float64
}

func (uc *NavigationService) GraphInfo(ctx context.Context) (GraphInfo, error) {
	info := GraphInfo{}
	err := uc.sim.View(func(g *graph.DynamicGraph) error {
		info = GraphInfo{
			Bounds:    g.Bounds(),
			NumPoints: g.NumPoints(),
			NumEdges:  g.NumEdges(),
			NumCells:  g.Grid().Len(),
			CellSize:  g.CellSize(),
		}
		return nil
	})
	return info, err
}

// PopulatedCells every grid cell holding at least one edge, as GeoJSON boxes.
func (uc *NavigationService) PopulatedCells(ctx context.Context) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	err := uc.sim.View(func(g *graph.DynamicGraph) error {
		for _, c := range g.Grid().NonEmptyCells() {
			f := geojson.NewFeature(geo.CellBound(c, g.CellSize()).ToPolygon())
			f.Properties["i"] = c.I
			f.Properties["j"] = c.J
			f.Properties["edges"] = len(g.Grid().Edges(c))
			fc.Append(f)
		}
		return nil
	})
	return fc, err
}

func (uc *NavigationService) Obstacles(ctx context.Context) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	err := uc.sim.View(func(g *graph.DynamicGraph) error {
		for i, p := range g.Polygons() {
			f := geojson.NewFeature(orb.Polygon{geo.ToOrbRing(p.Points)})
			f.Properties["index"] = i
			f.Properties["center"] = []float64{p.Center.X, p.Center.Y}
			f.Properties["velocity"] = []float64{p.VelocityX, p.VelocityY}
			f.Properties["draggable"] = p.Draggable
			f.Properties["dragging"] = p.Dragging
			fc.Append(f)
		}
		return nil
	})
	return fc, err
}

// AddObstacle generates one hexagon in a random populated cell, returns its index.
func (uc *NavigationService) AddObstacle(ctx context.Context) (int, error) {
	idx := -1
	err := uc.sim.Update(func(g *graph.DynamicGraph) error {
		if _, ok := g.GenerateHex(uc.hexRadius); !ok {
			return server.WrapErrorf(nil, server.ErrNotFound, "graph has no populated cell for an obstacle")
		}
		idx = len(g.Polygons()) - 1
		return nil
	})
	return idx, err
}

func (uc *NavigationService) ClearObstacles(ctx context.Context) error {
	return uc.sim.Update(func(g *graph.DynamicGraph) error {
		g.ClearPolygons()
		return nil
	})
}

// DragObstacle marks obstacle idx as dragged and moves its center to (lat, lon).
func (uc *NavigationService) DragObstacle(ctx context.Context, idx int, lat, lon float64) error {
	return uc.sim.Update(func(g *graph.DynamicGraph) error {
		if err := g.SetPolygonDragging(idx, true); err != nil {
			return err
		}
		return g.MovePolygonTo(idx, lon, lat)
	})
}

// DragObstacleAt picks the draggable obstacle under (lat, lon), marks it as dragged and moves its
// center to (toLat, toLon). Returns the picked index so the caller can release it later.
func (uc *NavigationService) DragObstacleAt(ctx context.Context, lat, lon, toLat, toLon float64) (int, error) {
	idx := -1
	err := uc.sim.Update(func(g *graph.DynamicGraph) error {
		i, ok := g.PolygonAt(lon, lat)
		if !ok {
			return server.WrapErrorf(nil, server.ErrNotFound, "no draggable obstacle at %f,%f", lat, lon)
		}
		if err := g.SetPolygonDragging(i, true); err != nil {
			return err
		}
		idx = i
		return g.MovePolygonTo(i, toLon, toLat)
	})
	return idx, err
}

func (uc *NavigationService) ReleaseObstacle(ctx context.Context, idx int) error {
	return uc.sim.Update(func(g *graph.DynamicGraph) error {
		return g.SetPolygonDragging(idx, false)
	})
}

type ShortestPathResult struct {
	Nodes     []int64
	Route     []datastructure.Coordinate
	Polyline  string
	Dist      float64
	Found     bool
	Safe      bool
	Source    datastructure.Coordinate
	Target    datastructure.Coordinate
	SrcOnEdge datastructure.Coordinate
}

// ShortestPath snaps both coordinates to their nearest graph nodes and searches between them.
// With avoidObstacles the obstacle-aware search is used and Safe tells whether the fallback kicked in.
func (uc *NavigationService) ShortestPath(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64, avoidObstacles bool) (ShortestPathResult, error) {
	res := ShortestPathResult{}
	err := uc.sim.View(func(g *graph.DynamicGraph) error {
		src, ok := g.NearestPoint(srcLon, srcLat)
		if !ok {
			return server.WrapErrorf(nil, server.ErrNotFound, "sorry!! the location you entered is not covered on my map :(")
		}
		dst, ok := g.NearestPoint(dstLon, dstLat)
		if !ok {
			return server.WrapErrorf(nil, server.ErrNotFound, "sorry!! the location you entered is not covered on my map :(")
		}

		var path []int64
		if avoidObstacles {
			path, res.Safe = g.FindPathAvoidingPolygons(src.ID, dst.ID)
		} else {
			path = g.FindPathAStar(src.ID, dst.ID)
			res.Safe = !anyNodeCovered(g, src.ID, path)
		}

		res.Source = datastructure.NewCoordinate(src.Y, src.X)
		res.Target = datastructure.NewCoordinate(dst.Y, dst.X)
		res.SrcOnEdge = res.Source
		res.Nodes = path
		res.Found = len(path) > 0
		if !res.Found {
			return nil
		}

		pts := g.PathPoints(src.ID, path)
		res.Route = make([]datastructure.Coordinate, len(pts))
		for i, p := range pts {
			res.Route[i] = datastructure.NewCoordinate(p.Y, p.X)
		}
		res.Polyline = datastructure.RenderPath(pts)
		res.Dist = g.PathDistance(src.ID, path)

		// titik masuk ke jalan: proyeksi titik request ke edge pertama
		onEdge := geo.ProjectPointToSegment(geo.NewSyntheticPoint(srcLon, srcLat), pts[0], pts[1])
		res.SrcOnEdge = datastructure.NewCoordinate(onEdge.Y, onEdge.X)
		return nil
	})
	if err != nil {
		return ShortestPathResult{}, err
	}
	return res, nil
}

func anyNodeCovered(g *graph.DynamicGraph, start int64, path []int64) bool {
	for _, p := range g.PathPoints(start, path) {
		if g.PointInAnyPolygon(p) {
			return true
		}
	}
	return false
}

func (uc *NavigationService) State(ctx context.Context) simulation.State {
	return uc.sim.Snapshot()
}

// Step advances the live simulation n ticks.
func (uc *NavigationService) Step(ctx context.Context, n int) (simulation.State, error) {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return simulation.State{}, err
		}
		if err := uc.sim.Step(); err != nil {
			return simulation.State{}, err
		}
	}
	return uc.sim.Snapshot(), nil
}

// NewRound stores the result of the running round, if any, then starts a new one.
func (uc *NavigationService) NewRound(ctx context.Context) (simulation.State, error) {
	if prev, err := uc.sim.Result(); err == nil && uc.kv != nil {
		if err := uc.kv.SaveRounds([]simulation.RoundResult{prev}); err != nil {
			zap.L().Warn("failed to save round", zap.Int("round", prev.Round), zap.Error(err))
		}
	}
	if err := uc.sim.NewRound(ctx); err != nil {
		return simulation.State{}, err
	}
	return uc.sim.Snapshot(), nil
}

func (uc *NavigationService) RoundsNearby(ctx context.Context, lat, lon, radiusKm float64) ([]simulation.RoundResult, error) {
	if uc.kv == nil {
		return nil, server.WrapErrorf(nil, server.ErrNotFound, "round storage is disabled")
	}
	return uc.kv.GetRoundsNear(lat, lon, radiusKm)
}
