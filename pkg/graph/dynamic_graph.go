// Package graph owns the road network, the obstacles moving over it and the shortest path searches.
package graph

import (
	"math"
	"sync"

	"lintang/congestionnav/pkg/datastructure"
	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/server"
	"lintang/congestionnav/pkg/spatialindex"

	"github.com/dhconnelly/rtreego"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// DynamicGraph directed weighted point graph plus the obstacle list.
//
// Edges live in one arena and are referenced everywhere (adjacency, spatial index) by EdgeID,
// so appending edges never invalidates what the grid already holds.
// Not safe for concurrent mutation; callers serialize ticks.
type DynamicGraph struct {
	points map[int64]geo.Point
	edges  []datastructure.Edge
	adj    map[int64][]datastructure.EdgeID

	polygons []obstacle.Polygon
	grid     *spatialindex.UniformGrid
	bounds   datastructure.Bounds

	rng    *rand.Rand
	motion obstacle.MotionConfig

	// rtree node, dibangun oleh BuildIndex atau lazy oleh NearestPoint. rtMu menjaga rt karena
	// NearestPoint dipanggil dari banyak reader sekaligus.
	rtMu sync.Mutex
	rt   *rtreego.Rtree
}

func NewDynamicGraph(cellSize float64, motion obstacle.MotionConfig, seed uint64) *DynamicGraph {
	return &DynamicGraph{
		points: make(map[int64]geo.Point),
		edges:  make([]datastructure.Edge, 0),
		adj:    make(map[int64][]datastructure.EdgeID),
		grid:   spatialindex.NewUniformGrid(cellSize),
		bounds: datastructure.Bounds{
			MinLon: math.Inf(1),
			MaxLon: math.Inf(-1),
			MinLat: math.Inf(1),
			MaxLat: math.Inf(-1),
		},
		rng:    rand.New(rand.NewSource(seed)),
		motion: motion,
	}
}

// AddPoint inserts a node (x = lon, y = lat). Re-adding an id overwrites its coordinates but keeps
// the edges already attached to it.
func (g *DynamicGraph) AddPoint(id int64, x, y float64) {
	g.points[id] = geo.NewPoint(id, x, y)
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make([]datastructure.EdgeID, 0)
	}

	g.bounds.MinLon = math.Min(g.bounds.MinLon, x)
	g.bounds.MaxLon = math.Max(g.bounds.MaxLon, x)
	g.bounds.MinLat = math.Min(g.bounds.MinLat, y)
	g.bounds.MaxLat = math.Max(g.bounds.MaxLat, y)

	g.rtMu.Lock()
	g.rt = nil
	g.rtMu.Unlock()
}

// AddEdge appends the directed edge u->v and registers it in the spatial index.
func (g *DynamicGraph) AddEdge(u, v int64, dist float64) (datastructure.EdgeID, error) {
	if dist < 0 || math.IsNaN(dist) {
		return datastructure.InvalidEdgeID, server.WrapErrorf(nil, server.ErrBadParamInput, "edge %d->%d: negative distance %f", u, v, dist)
	}
	pu, ok := g.points[u]
	if !ok {
		return datastructure.InvalidEdgeID, server.WrapErrorf(nil, server.ErrBadParamInput, "edge %d->%d: unknown source point", u, v)
	}
	pv, ok := g.points[v]
	if !ok {
		return datastructure.InvalidEdgeID, server.WrapErrorf(nil, server.ErrBadParamInput, "edge %d->%d: unknown target point", u, v)
	}

	id := datastructure.EdgeID(len(g.edges))
	g.edges = append(g.edges, datastructure.Edge{ID: id, From: u, To: v, Dist: dist})
	g.adj[u] = append(g.adj[u], id)
	g.grid.Insert(id, pu, pv)
	return id, nil
}

// AddBidirectionalEdge two directed edges, u->v then v->u.
func (g *DynamicGraph) AddBidirectionalEdge(u, v int64, dist float64) error {
	if _, err := g.AddEdge(u, v, dist); err != nil {
		return err
	}
	_, err := g.AddEdge(v, u, dist)
	return err
}

func (g *DynamicGraph) Point(id int64) (geo.Point, bool) {
	p, ok := g.points[id]
	return p, ok
}

func (g *DynamicGraph) HasPoint(id int64) bool {
	_, ok := g.points[id]
	return ok
}

// PointIDs all node ids ascending.
func (g *DynamicGraph) PointIDs() []int64 {
	ids := make([]int64, 0, len(g.points))
	for id := range g.points {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Adj outgoing edge handles of u in insertion order.
func (g *DynamicGraph) Adj(u int64) []datastructure.EdgeID {
	return g.adj[u]
}

func (g *DynamicGraph) Edge(id datastructure.EdgeID) datastructure.Edge {
	return g.edges[id]
}

func (g *DynamicGraph) Edges() []datastructure.Edge {
	return g.edges
}

func (g *DynamicGraph) Grid() *spatialindex.UniformGrid {
	return g.grid
}

func (g *DynamicGraph) CellSize() float64 {
	return g.grid.CellSize()
}

func (g *DynamicGraph) Bounds() datastructure.Bounds {
	return g.bounds
}

func (g *DynamicGraph) NumPoints() int {
	return len(g.points)
}

func (g *DynamicGraph) NumEdges() int {
	return len(g.edges)
}

func (g *DynamicGraph) MotionConfig() obstacle.MotionConfig {
	return g.motion
}

// Rand graph-level generator. Only for serial use (tick setup, obstacle generation).
func (g *DynamicGraph) Rand() *rand.Rand {
	return g.rng
}
