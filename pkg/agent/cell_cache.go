package agent

import (
	"context"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/occupancy"
)

// cellCache per-obstacle occupied cells plus their union. Obstacles are keyed by their index in
// the graph's list; a vertex snapshot decides whether an obstacle needs recomputing.
type cellCache struct {
	perPolygon []occupancy.CellSet
	snapshots  []obstacle.Polygon
	unsafe     occupancy.CellSet

	lastHit    geo.Cell
	hasLastHit bool
}

func newCellCache() *cellCache {
	return &cellCache{unsafe: occupancy.NewCellSet()}
}

// refresh recomputes changed obstacles in parallel, then merges the results serially and rebuilds
// the union when any set changed.
func (c *cellCache) refresh(g *graph.DynamicGraph) {
	polys := g.Polygons()
	changed := len(polys) != len(c.perPolygon)

	if len(polys) < len(c.perPolygon) {
		c.perPolygon = c.perPolygon[:len(polys)]
		c.snapshots = c.snapshots[:len(polys)]
	}

	dirty := make([]int, 0, len(polys))
	for i := range polys {
		if i >= len(c.snapshots) || !c.snapshots[i].SameShape(&polys[i]) {
			dirty = append(dirty, i)
		}
	}

	if len(dirty) > 0 {
		batch := make([]obstacle.Polygon, len(dirty))
		for k, i := range dirty {
			batch[k] = polys[i].Clone()
		}
		// tanpa cancel, tick selalu selesai
		results, _ := occupancy.OccupiedCellsParallel(context.Background(), batch, g.CellSize())

		for k, i := range dirty {
			for len(c.perPolygon) <= i {
				c.perPolygon = append(c.perPolygon, nil)
				c.snapshots = append(c.snapshots, obstacle.Polygon{})
			}
			c.snapshots[i] = batch[k]
			if c.perPolygon[i] == nil || !c.perPolygon[i].Equal(results[k]) {
				c.perPolygon[i] = results[k]
				changed = true
			}
		}
	}

	if changed {
		c.unsafe = occupancy.NewCellSet()
		for _, cells := range c.perPolygon {
			c.unsafe.Union(cells)
		}
	}
}

// pointSafe false only when p's cell is in the unsafe set and p really is inside an obstacle.
func (c *cellCache) pointSafe(g *graph.DynamicGraph, p geo.Point, cell geo.Cell) bool {
	if !c.unsafe.Contains(cell) {
		return true
	}
	if g.PointInAnyPolygon(p) {
		c.lastHit = cell
		c.hasLastHit = true
		return false
	}
	c.hasLastHit = false
	return true
}
