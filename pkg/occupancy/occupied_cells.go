// Package occupancy resolves which grid cells an obstacle currently overlaps.
//
// The test is a conservative broad phase: cells touching the polygon only at the tolerance
// boundary can be reported as occupied. No exact clipping is done.
package occupancy

import (
	"context"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/obstacle"

	"golang.org/x/sync/errgroup"
)

// OccupiedCells returns every cell in the polygon's bbox cell range that overlaps it. Checks, from
// cheap to expensive: a polygon edge crossing a cell side, a cell corner inside the polygon, a
// polygon vertex inside the cell box.
func OccupiedCells(poly *obstacle.Polygon, cellSize float64) CellSet {
	cells := NewCellSet()
	if poly.IsEmpty() {
		return cells
	}

	b := poly.Bound()
	iMin, jMin, iMax, jMax := geo.CellRange(b.Min[0], b.Min[1], b.Max[0], b.Max[1], cellSize)

	for i := iMin; i <= iMax; i++ {
		for j := jMin; j <= jMax; j++ {
			c := geo.Cell{I: i, J: j}
			if cellOverlaps(poly, c, cellSize) {
				cells.Add(c)
			}
		}
	}
	return cells
}

func cellOverlaps(poly *obstacle.Polygon, c geo.Cell, cellSize float64) bool {
	corners := c.Corners(cellSize)
	n := len(poly.Points)

	// (a) sisi polygon memotong sisi cell
	for k := 0; k < n; k++ {
		a, b := poly.Points[k], poly.Points[(k+1)%n]
		for s := 0; s < 4; s++ {
			if geo.SegmentsIntersect(a, b, corners[s], corners[(s+1)%4]) {
				return true
			}
		}
	}

	// (b) corner cell di dalam polygon
	for _, corner := range corners {
		if poly.Contains(corner) {
			return true
		}
	}

	// (c) vertex polygon di dalam cell
	box := geo.CellBound(c, cellSize)
	for _, p := range poly.Points {
		if p.X >= box.Min[0] && p.X <= box.Max[0] && p.Y >= box.Min[1] && p.Y <= box.Max[1] {
			return true
		}
	}
	return false
}

// OccupiedCellsBatch union of OccupiedCells over every polygon.
func OccupiedCellsBatch(polys []obstacle.Polygon, cellSize float64) CellSet {
	all := NewCellSet()
	for i := range polys {
		all.Union(OccupiedCells(&polys[i], cellSize))
	}
	return all
}

// OccupiedCellsParallel computes each polygon's cells concurrently. Result i belongs to polys[i];
// every goroutine writes only its own slot, merging is left to the caller.
func OccupiedCellsParallel(ctx context.Context, polys []obstacle.Polygon, cellSize float64) ([]CellSet, error) {
	results := make([]CellSet, len(polys))
	g, ctx := errgroup.WithContext(ctx)
	for i := range polys {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = OccupiedCells(&polys[i], cellSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
