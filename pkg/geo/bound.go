package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// BoundOf axis-aligned bounding box of points. Empty input gives an inverted (empty) bound.
func BoundOf(points []Point) orb.Bound {
	b := orb.Bound{
		Min: orb.Point{math.Inf(1), math.Inf(1)},
		Max: orb.Point{math.Inf(-1), math.Inf(-1)},
	}
	for _, p := range points {
		b.Min[0] = math.Min(b.Min[0], p.X)
		b.Min[1] = math.Min(b.Min[1], p.Y)
		b.Max[0] = math.Max(b.Max[0], p.X)
		b.Max[1] = math.Max(b.Max[1], p.Y)
	}
	return b
}

// CellBound returns the box of a grid cell.
func CellBound(c Cell, cellSize float64) orb.Bound {
	x0, y0 := c.Origin(cellSize)
	return orb.Bound{
		Min: orb.Point{x0, y0},
		Max: orb.Point{x0 + cellSize, y0 + cellSize},
	}
}

// ToOrbRing converts a vertex list to a closed orb ring (first vertex repeated at the end).
func ToOrbRing(points []Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(points) > 0 {
		ring = append(ring, orb.Point{points[0].X, points[0].Y})
	}
	return ring
}
