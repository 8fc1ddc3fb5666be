package geo_test

import (
	"math"
	"testing"

	"lintang/congestionnav/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func hexagon(cx, cy, r float64) []geo.Point {
	pts := make([]geo.Point, 0, 6)
	for k := 0; k < 6; k++ {
		angle := math.Pi / 3.0 * float64(k)
		pts = append(pts, geo.NewPoint(int64(k), cx+r*math.Cos(angle), cy+r*math.Sin(angle)))
	}
	return pts
}

func TestPointInConvexPolygon(t *testing.T) {
	square := []geo.Point{
		geo.NewSyntheticPoint(0, 0),
		geo.NewSyntheticPoint(1, 0),
		geo.NewSyntheticPoint(1, 1),
		geo.NewSyntheticPoint(0, 1),
	}

	t.Run("strictly inside", func(t *testing.T) {
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.5, 0.5)))
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.9, 0.1)))
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.1, 0.9)))
	})

	t.Run("strictly outside", func(t *testing.T) {
		assert.False(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(1.5, 0.5)))
		assert.False(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(-0.1, 0.5)))
		assert.False(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.5, -0.1)))
		assert.False(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.5, 1.1)))
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0, 0)))
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(1, 0.5)))
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.5, 1)))
		assert.True(t, geo.PointInConvexPolygon(square, geo.NewSyntheticPoint(0.5, 1+1e-10)))
	})

	t.Run("degenerate polygon", func(t *testing.T) {
		assert.False(t, geo.PointInConvexPolygon(nil, geo.NewSyntheticPoint(0, 0)))
		assert.False(t, geo.PointInConvexPolygon(square[:2], geo.NewSyntheticPoint(0.5, 0)))
	})

	t.Run("hexagon agrees with ray casting", func(t *testing.T) {
		hex := hexagon(-43.9, -19.9, 0.009)
		assert.True(t, geo.IsConvexCCW(hex))
		for i := -20; i <= 20; i++ {
			for j := -20; j <= 20; j++ {
				p := geo.NewSyntheticPoint(-43.9+float64(i)*0.00047, -19.9+float64(j)*0.00047)
				if geo.PointInPolygon(hex, p) {
					assert.True(t, geo.PointInConvexPolygon(hex, p), "point %v", p)
				}
			}
		}
		assert.False(t, geo.PointInConvexPolygon(hex, geo.NewSyntheticPoint(-43.9+0.02, -19.9)))
	})
}

func TestSegmentsIntersect(t *testing.T) {
	a, b := geo.NewSyntheticPoint(0, 0), geo.NewSyntheticPoint(2, 2)

	t.Run("crossing", func(t *testing.T) {
		assert.True(t, geo.SegmentsIntersect(a, b, geo.NewSyntheticPoint(0, 2), geo.NewSyntheticPoint(2, 0)))
	})
	t.Run("disjoint parallel", func(t *testing.T) {
		assert.False(t, geo.SegmentsIntersect(a, b, geo.NewSyntheticPoint(1, 0), geo.NewSyntheticPoint(3, 2)))
	})
	t.Run("touching endpoint", func(t *testing.T) {
		assert.True(t, geo.SegmentsIntersect(a, b, b, geo.NewSyntheticPoint(3, 0)))
	})
	t.Run("collinear overlap", func(t *testing.T) {
		assert.True(t, geo.SegmentsIntersect(a, b, geo.NewSyntheticPoint(1, 1), geo.NewSyntheticPoint(3, 3)))
	})
	t.Run("collinear apart", func(t *testing.T) {
		assert.False(t, geo.SegmentsIntersect(a, b, geo.NewSyntheticPoint(3, 3), geo.NewSyntheticPoint(4, 4)))
	})
}

func TestPointInPolygonNonConvex(t *testing.T) {
	// bentuk L
	l := []geo.Point{
		geo.NewSyntheticPoint(0, 0),
		geo.NewSyntheticPoint(2, 0),
		geo.NewSyntheticPoint(2, 1),
		geo.NewSyntheticPoint(1, 1),
		geo.NewSyntheticPoint(1, 2),
		geo.NewSyntheticPoint(0, 2),
	}
	assert.True(t, geo.PointInPolygon(l, geo.NewSyntheticPoint(0.5, 1.5)))
	assert.True(t, geo.PointInPolygon(l, geo.NewSyntheticPoint(1.5, 0.5)))
	assert.False(t, geo.PointInPolygon(l, geo.NewSyntheticPoint(1.5, 1.5)))
	assert.False(t, geo.IsConvexCCW(l))
	assert.True(t, geo.SegmentIntersectsPolygon(geo.NewSyntheticPoint(1.5, 1.5), geo.NewSyntheticPoint(0.5, 0.5), l))
}

func TestHaversineDistance(t *testing.T) {
	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		d := geo.HaversineDistance(geo.NewSyntheticPoint(0, 0), geo.NewSyntheticPoint(1, 0))
		assert.InDelta(t, 111194.9, d, 1.0)
	})
	t.Run("symmetric and zero on itself", func(t *testing.T) {
		p, q := geo.NewSyntheticPoint(-43.93, -19.92), geo.NewSyntheticPoint(-43.95, -19.88)
		assert.InDelta(t, geo.HaversineDistance(p, q), geo.HaversineDistance(q, p), 1e-9)
		assert.Equal(t, 0.0, geo.HaversineDistance(p, p))
	})
}

func TestCellOf(t *testing.T) {
	assert.Equal(t, geo.Cell{I: 0, J: 0}, geo.CellOf(0.005, 0.009, 0.01))
	assert.Equal(t, geo.Cell{I: -1, J: -1}, geo.CellOf(-0.005, -0.001, 0.01))
	assert.Equal(t, geo.Cell{I: 100, J: 2}, geo.CellOf(1.0, 0.025, 0.01))

	corners := geo.Cell{I: 1, J: 2}.Corners(0.5)
	assert.Equal(t, 0.5, corners[0].X)
	assert.Equal(t, 1.0, corners[0].Y)
	assert.Equal(t, 1.0, corners[2].X)
	assert.Equal(t, 1.5, corners[2].Y)
}

func TestProjectPointToSegment(t *testing.T) {
	a, b := geo.NewSyntheticPoint(110.80, -7.55), geo.NewSyntheticPoint(110.82, -7.55)
	proj := geo.ProjectPointToSegment(geo.NewSyntheticPoint(110.81, -7.54), a, b)
	assert.InDelta(t, 110.81, proj.X, 1e-4)
	assert.InDelta(t, -7.55, proj.Y, 1e-4)
	assert.Equal(t, int64(-1), proj.ID)
}
