package obstacle_test

import (
	"math"
	"testing"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/spatialindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// roadGrid bikin grid dengan jalan horizontal panjang di y=0.005, sel (0..9, 0).
func roadGrid() *spatialindex.UniformGrid {
	g := spatialindex.NewUniformGrid(0.01)
	for i := 0; i < 10; i++ {
		u := geo.NewPoint(int64(i), float64(i)*0.01+0.001, 0.005)
		v := geo.NewPoint(int64(i+1), float64(i)*0.01+0.009, 0.005)
		g.Insert(0, u, v)
	}
	return g
}

func TestGenerateHexInGrid(t *testing.T) {
	cfg := obstacle.DefaultMotionConfig()

	t.Run("empty grid gives empty polygon", func(t *testing.T) {
		hex := obstacle.GenerateHexInGrid(spatialindex.NewUniformGrid(0.01), 0.009, rand.New(rand.NewSource(1)), cfg)
		assert.True(t, hex.IsEmpty())
	})

	t.Run("hexagon is convex ccw and centered in a populated cell", func(t *testing.T) {
		g := roadGrid()
		rng := rand.New(rand.NewSource(42))
		for n := 0; n < 50; n++ {
			hex := obstacle.GenerateHexInGrid(g, 0.004, rng, cfg)
			require.Len(t, hex.Points, 6)
			assert.True(t, geo.IsConvexCCW(hex.Points))
			assert.True(t, g.Has(geo.CellOfPoint(hex.Center, g.CellSize())))
			assert.Equal(t, int64(-1), hex.Center.ID)
			assert.True(t, hex.Contains(hex.Center))
			assert.True(t, hex.Draggable)
			for _, p := range hex.Points {
				assert.InDelta(t, 0.004, math.Hypot(p.X-hex.Center.X, p.Y-hex.Center.Y), 1e-12)
			}
		}
	})

	t.Run("same seed same hexagon", func(t *testing.T) {
		g := roadGrid()
		a := obstacle.GenerateHexInGrid(g, 0.004, rand.New(rand.NewSource(7)), cfg)
		b := obstacle.GenerateHexInGrid(g, 0.004, rand.New(rand.NewSource(7)), cfg)
		assert.True(t, a.SameShape(&b))
	})
}

func TestPolygonMotion(t *testing.T) {
	g := roadGrid()
	cfg := obstacle.DefaultMotionConfig()

	t.Run("center never leaves the road and displacement stays bounded", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2025))
		hex := obstacle.GenerateHexInGrid(g, 0.003, rng, cfg)
		require.False(t, hex.IsEmpty())

		for tick := 0; tick < 1000; tick++ {
			before := hex.Center
			hex.Step(rng, cfg, g)
			disp := math.Hypot(hex.Center.X-before.X, hex.Center.Y-before.Y)
			assert.LessOrEqual(t, disp, cfg.MaxMoveDistance+1e-12)
			assert.True(t, g.Has(geo.CellOfPoint(hex.Center, g.CellSize())), "tick %d center %v", tick, hex.Center)
			assert.True(t, geo.IsConvexCCW(hex.Points))
		}
	})

	t.Run("rejected move leaves polygon untouched", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		hex := obstacle.GenerateHexInGrid(g, 0.003, rng, cfg)
		before := hex.Clone()
		ok := hex.UpdatePosition(0, 0.05, g)
		assert.False(t, ok)
		assert.True(t, hex.SameShape(&before))
		assert.Equal(t, before.Center, hex.Center)
	})

	t.Run("accepted move translates every vertex", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		hex := obstacle.GenerateHexInGrid(g, 0.003, rng, cfg)
		hex.MoveTo(0.015, 0.005)
		before := hex.Clone()
		ok := hex.UpdatePosition(0.001, 0.001, g)
		require.True(t, ok)
		for i := range hex.Points {
			assert.InDelta(t, before.Points[i].X+0.001, hex.Points[i].X, 1e-15)
			assert.InDelta(t, before.Points[i].Y+0.001, hex.Points[i].Y, 1e-15)
		}
	})

	t.Run("boxed in polygon stays frozen", func(t *testing.T) {
		single := spatialindex.NewUniformGrid(0.01)
		single.Insert(0, geo.NewPoint(1, 0.0049, 0.0049), geo.NewPoint(2, 0.0051, 0.0051))
		hex := obstacle.NewPolygon([]geo.Point{
			geo.NewSyntheticPoint(0.006, 0.005),
			geo.NewSyntheticPoint(0.005, 0.006),
			geo.NewSyntheticPoint(0.004, 0.005),
		}, geo.NewSyntheticPoint(0.005, 0.005))
		hex.VelocityX = 1
		big := cfg
		big.MaxMoveDistance = 0.5
		big.Acceleration = 1
		big.Inertia = 1
		moved := hex.Step(rand.New(rand.NewSource(9)), big, single)
		if moved {
			assert.True(t, single.Has(geo.CellOfPoint(hex.Center, 0.01)))
		} else {
			assert.Equal(t, 0.005, hex.Center.X)
			assert.Equal(t, 0.005, hex.Center.Y)
		}
	})

	t.Run("dragging suspends autonomous motion", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		hex := obstacle.GenerateHexInGrid(g, 0.003, rng, cfg)
		hex.SetDragging(true)
		before := hex.Center
		for i := 0; i < 20; i++ {
			assert.False(t, hex.Step(rng, cfg, g))
		}
		assert.Equal(t, before, hex.Center)

		hex.MoveTo(0.055, 0.005)
		assert.Equal(t, 0.055, hex.Center.X)
		assert.True(t, hex.Contains(geo.NewSyntheticPoint(0.055, 0.005)))
	})
}
