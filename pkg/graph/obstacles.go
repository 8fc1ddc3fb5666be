package graph

import (
	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/server"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

func (g *DynamicGraph) AddPolygon(p obstacle.Polygon) {
	g.polygons = append(g.polygons, p)
}

func (g *DynamicGraph) ClearPolygons() {
	g.polygons = g.polygons[:0]
}

// Polygons the live obstacle slice. Index i is stable until ClearPolygons.
func (g *DynamicGraph) Polygons() []obstacle.Polygon {
	return g.polygons
}

func (g *DynamicGraph) Polygon(i int) (*obstacle.Polygon, error) {
	if i < 0 || i >= len(g.polygons) {
		return nil, server.WrapErrorf(nil, server.ErrNotFound, "obstacle %d not found", i)
	}
	return &g.polygons[i], nil
}

// GenerateHex adds a random hexagon obstacle in a populated cell. ok false when the grid is empty.
func (g *DynamicGraph) GenerateHex(radius float64) (obstacle.Polygon, bool) {
	hex := obstacle.GenerateHexInGrid(g.grid, radius, g.rng, g.motion)
	if hex.IsEmpty() {
		return hex, false
	}
	g.AddPolygon(hex)
	return hex, true
}

// MovePolygonTo drag obstacle i so its center lands on (x, y).
func (g *DynamicGraph) MovePolygonTo(i int, x, y float64) error {
	p, err := g.Polygon(i)
	if err != nil {
		return err
	}
	if !p.Draggable {
		return server.WrapErrorf(nil, server.ErrConflict, "obstacle %d is not draggable", i)
	}
	p.MoveTo(x, y)
	return nil
}

func (g *DynamicGraph) SetPolygonDragging(i int, dragging bool) error {
	p, err := g.Polygon(i)
	if err != nil {
		return err
	}
	if dragging && !p.Draggable {
		return server.WrapErrorf(nil, server.ErrConflict, "obstacle %d is not draggable", i)
	}
	p.SetDragging(dragging)
	return nil
}

// UpdatePolygonsPosition moves every obstacle one tick. Seeds are drawn serially from the graph
// generator, then each obstacle steps with its own generator in parallel. Returns how many
// obstacles actually moved.
func (g *DynamicGraph) UpdatePolygonsPosition() int {
	seeds := make([]uint64, len(g.polygons))
	for i := range seeds {
		seeds[i] = g.rng.Uint64()
	}

	moved := make([]bool, len(g.polygons))
	var eg errgroup.Group
	for i := range g.polygons {
		i := i
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(seeds[i]))
			moved[i] = g.polygons[i].Step(rng, g.motion, g.grid)
			return nil
		})
	}
	// goroutine di atas tidak pernah return error, Wait cuma join
	_ = eg.Wait()

	count := 0
	for _, m := range moved {
		if m {
			count++
		}
	}
	return count
}

// PolygonAt index of the first draggable obstacle containing (x, y).
func (g *DynamicGraph) PolygonAt(x, y float64) (int, bool) {
	p := geo.NewSyntheticPoint(x, y)
	for i := range g.polygons {
		if g.polygons[i].Draggable && g.polygons[i].Contains(p) {
			return i, true
		}
	}
	return -1, false
}

// PointInAnyPolygon exact containment against every obstacle.
func (g *DynamicGraph) PointInAnyPolygon(p geo.Point) bool {
	for i := range g.polygons {
		if g.polygons[i].Contains(p) {
			return true
		}
	}
	return false
}

func (g *DynamicGraph) nodeInAnyPolygon(id int64) bool {
	p, ok := g.points[id]
	if !ok {
		return false
	}
	return g.PointInAnyPolygon(p)
}
