package graph_test

import (
	"errors"
	"math"
	"sync"
	"testing"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineGraph(t *testing.T) *graph.DynamicGraph {
	g := graph.NewDynamicGraph(0.5, obstacle.DefaultMotionConfig(), 1)
	g.AddPoint(1, 0, 0)
	g.AddPoint(2, 1, 0)
	g.AddPoint(3, 2, 0)
	_, err := g.AddEdge(1, 2, 100)
	require.NoError(t, err)
	_, err = g.AddEdge(2, 3, 100)
	require.NoError(t, err)
	return g
}

// grid 3x3, jarak 0.01, semua edge dua arah.
//
//	7 - 8 - 9
//	|   |   |
//	4 - 5 - 6
//	|   |   |
//	1 - 2 - 3
func gridGraph(t *testing.T) *graph.DynamicGraph {
	g := graph.NewDynamicGraph(0.005, obstacle.DefaultMotionConfig(), 7)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			g.AddPoint(int64(r*3+c+1), float64(c)*0.01, float64(r)*0.01)
		}
	}
	link := func(u, v int64) {
		pu, _ := g.Point(u)
		pv, _ := g.Point(v)
		require.NoError(t, g.AddBidirectionalEdge(u, v, geo.HaversineDistance(pu, pv)))
	}
	link(1, 2)
	link(2, 3)
	link(4, 5)
	link(5, 6)
	link(7, 8)
	link(8, 9)
	link(1, 4)
	link(4, 7)
	link(2, 5)
	link(5, 8)
	link(3, 6)
	link(6, 9)
	return g
}

func square(cx, cy, half float64) obstacle.Polygon {
	return obstacle.NewPolygon([]geo.Point{
		geo.NewSyntheticPoint(cx-half, cy-half),
		geo.NewSyntheticPoint(cx+half, cy-half),
		geo.NewSyntheticPoint(cx+half, cy+half),
		geo.NewSyntheticPoint(cx-half, cy+half),
	}, geo.NewSyntheticPoint(cx, cy))
}

func TestAddEdge(t *testing.T) {
	g := lineGraph(t)

	t.Run("negative distance rejected", func(t *testing.T) {
		_, err := g.AddEdge(1, 3, -1)
		require.Error(t, err)
		assert.True(t, errors.Is(server.CodeOf(err), server.ErrBadParamInput))
	})

	t.Run("unknown endpoint rejected", func(t *testing.T) {
		_, err := g.AddEdge(1, 42, 1)
		require.Error(t, err)
		assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
	})

	t.Run("edges registered in grid and adjacency", func(t *testing.T) {
		assert.Equal(t, 2, g.NumEdges())
		assert.Len(t, g.Adj(1), 1)
		e := g.Edge(g.Adj(1)[0])
		assert.Equal(t, int64(2), e.To)
		assert.Contains(t, g.Grid().Edges(geo.CellOf(0.5, 0, 0.5)), e.ID)
	})

	t.Run("bounds grow with points", func(t *testing.T) {
		b := g.Bounds()
		assert.Equal(t, 0.0, b.MinLon)
		assert.Equal(t, 2.0, b.MaxLon)
		assert.Equal(t, 0.0, b.MinLat)
		assert.Equal(t, 0.0, b.MaxLat)
	})
}

func TestFindPathAStar(t *testing.T) {
	g := lineGraph(t)

	t.Run("chain", func(t *testing.T) {
		assert.Equal(t, []int64{2, 3}, g.FindPathAStar(1, 3))
	})

	t.Run("direct edge", func(t *testing.T) {
		assert.Equal(t, []int64{2}, g.FindPathAStar(1, 2))
	})

	t.Run("no reverse edge", func(t *testing.T) {
		assert.Empty(t, g.FindPathAStar(2, 1))
	})

	t.Run("same node", func(t *testing.T) {
		assert.Empty(t, g.FindPathAStar(1, 1))
	})

	t.Run("unknown ids", func(t *testing.T) {
		assert.Empty(t, g.FindPathAStar(1, 99))
		assert.Empty(t, g.FindPathAStar(99, 1))
	})

	t.Run("idempotent on ties", func(t *testing.T) {
		gg := gridGraph(t)
		first := gg.FindPathAStar(1, 9)
		require.Len(t, first, 4)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, gg.FindPathAStar(1, 9))
		}
	})

	t.Run("prefers lighter route", func(t *testing.T) {
		gg := graph.NewDynamicGraph(0.5, obstacle.DefaultMotionConfig(), 1)
		gg.AddPoint(1, 0, 0)
		gg.AddPoint(2, 0.001, 0.001)
		gg.AddPoint(3, 0.002, 0)
		gg.AddPoint(4, 0.001, -0.001)
		for _, e := range [][3]float64{{1, 2, 500}, {2, 3, 500}, {1, 4, 200}, {4, 3, 200}} {
			_, err := gg.AddEdge(int64(e[0]), int64(e[1]), e[2])
			require.NoError(t, err)
		}
		assert.Equal(t, []int64{4, 3}, gg.FindPathAStar(1, 3))
		assert.InDelta(t, 400.0, gg.PathDistance(1, []int64{4, 3}), 1e-9)
	})
}

func TestFindPathAStarConsideringPolygons(t *testing.T) {
	t.Run("no obstacles equals plain search", func(t *testing.T) {
		g := gridGraph(t)
		for _, u := range g.PointIDs() {
			for _, v := range g.PointIDs() {
				assert.Equal(t, g.FindPathAStar(u, v), g.FindPathAStarConsideringPolygons(u, v))
			}
		}
	})

	t.Run("obstacle away from graph changes nothing", func(t *testing.T) {
		g := gridGraph(t)
		g.AddPolygon(square(1, 1, 0.001))
		assert.Equal(t, g.FindPathAStar(1, 9), g.FindPathAStarConsideringPolygons(1, 9))
	})

	t.Run("detours around covered node", func(t *testing.T) {
		g := gridGraph(t)
		// tutup node 5 di tengah
		g.AddPolygon(square(0.01, 0.01, 0.002))
		path, safe := g.FindPathAvoidingPolygons(2, 8)
		assert.True(t, safe)
		assert.NotContains(t, path, int64(5))
		assert.Equal(t, int64(8), path[len(path)-1])
		assert.Len(t, path, 4)
	})

	t.Run("goal inside obstacle falls back", func(t *testing.T) {
		g := gridGraph(t)
		g.AddPolygon(square(0.02, 0.02, 0.002))
		path, safe := g.FindPathAvoidingPolygons(1, 9)
		assert.False(t, safe)
		assert.Equal(t, g.FindPathAStar(1, 9), path)
	})

	t.Run("no safe path falls back", func(t *testing.T) {
		g := lineGraph(t)
		g.AddPolygon(square(1, 0, 0.1))
		path, safe := g.FindPathAvoidingPolygons(1, 3)
		assert.False(t, safe)
		assert.Equal(t, []int64{2, 3}, path)
		assert.Equal(t, []int64{2, 3}, g.FindPathAStarConsideringPolygons(1, 3))
	})
}

func TestObstacleManagement(t *testing.T) {
	g := gridGraph(t)

	hex, ok := g.GenerateHex(0.002)
	require.True(t, ok)
	assert.Len(t, g.Polygons(), 1)
	assert.True(t, g.Grid().Has(geo.CellOfPoint(hex.Center, g.CellSize())))

	t.Run("drag", func(t *testing.T) {
		require.NoError(t, g.SetPolygonDragging(0, true))
		require.NoError(t, g.MovePolygonTo(0, 0.01, 0.01))
		p, err := g.Polygon(0)
		require.NoError(t, err)
		assert.InDelta(t, 0.01, p.Center.X, 1e-12)
		assert.True(t, g.PointInAnyPolygon(geo.NewSyntheticPoint(0.01, 0.01)))

		// sedang di-drag, tidak bergerak sendiri
		before := p.Clone()
		for i := 0; i < 10; i++ {
			g.UpdatePolygonsPosition()
		}
		assert.True(t, before.SameShape(p))
		require.NoError(t, g.SetPolygonDragging(0, false))
	})

	t.Run("not draggable", func(t *testing.T) {
		p, _ := g.Polygon(0)
		p.SetDraggable(false)
		err := g.MovePolygonTo(0, 0, 0)
		assert.Equal(t, server.ErrConflict, server.CodeOf(err))
		p.SetDraggable(true)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := g.Polygon(3)
		assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
	})

	t.Run("clear", func(t *testing.T) {
		g.ClearPolygons()
		assert.Empty(t, g.Polygons())
	})

	t.Run("empty graph generates nothing", func(t *testing.T) {
		empty := graph.NewDynamicGraph(0.01, obstacle.DefaultMotionConfig(), 1)
		_, ok := empty.GenerateHex(0.002)
		assert.False(t, ok)
		assert.Empty(t, empty.Polygons())
	})
}

func TestUpdatePolygonsPosition(t *testing.T) {
	newGraph := func() *graph.DynamicGraph {
		g := gridGraph(t)
		for i := 0; i < 5; i++ {
			_, ok := g.GenerateHex(0.002)
			require.True(t, ok)
		}
		return g
	}

	a, b := newGraph(), newGraph()
	d := a.MotionConfig().MaxMoveDistance
	for tick := 0; tick < 200; tick++ {
		prev := make([]geo.Point, len(a.Polygons()))
		for i, p := range a.Polygons() {
			prev[i] = p.Center
		}
		a.UpdatePolygonsPosition()
		b.UpdatePolygonsPosition()

		for i, p := range a.Polygons() {
			assert.True(t, a.Grid().Has(geo.CellOfPoint(p.Center, a.CellSize())))
			assert.LessOrEqual(t, math.Hypot(p.Center.X-prev[i].X, p.Center.Y-prev[i].Y), d+1e-12)
			// seed sama, hasil sama walaupun update paralel
			assert.True(t, p.SameShape(&b.Polygons()[i]))
		}
	}
}

func TestNearestPoint(t *testing.T) {
	g := gridGraph(t)
	p, ok := g.NearestPoint(0.0101, 0.0099)
	require.True(t, ok)
	assert.Equal(t, int64(5), p.ID)

	g.AddPoint(10, 0.5, 0.5)
	p, ok = g.NearestPoint(0.49, 0.49)
	require.True(t, ok)
	assert.Equal(t, int64(10), p.ID)

	_, ok = graph.NewDynamicGraph(0.01, obstacle.DefaultMotionConfig(), 1).NearestPoint(0, 0)
	assert.False(t, ok)
}

func TestNearestPointConcurrent(t *testing.T) {
	g := graph.NewDynamicGraph(0.01, obstacle.DefaultMotionConfig(), 1)
	for i := 0; i < 2000; i++ {
		g.AddPoint(int64(i+1), float64(i%50)*0.001, float64(i/50)*0.001)
	}

	// index belum dibangun: reader pertama yang membangun, sisanya harus menunggu
	var wg sync.WaitGroup
	ids := make([]int64, 8)
	for w := 0; w < len(ids); w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			p, ok := g.NearestPoint(0.01, 0.01)
			if ok {
				ids[w] = p.ID
			}
		}(w)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, int64(10*50+10+1), id)
	}

	g.BuildIndex()
	p, ok := g.NearestPoint(0.0491, 0.0391)
	require.True(t, ok)
	assert.Equal(t, int64(39*50+49+1), p.ID)
}

func TestPolygonAt(t *testing.T) {
	g := gridGraph(t)
	g.AddPolygon(square(0.01, 0.01, 0.002))
	locked := square(0.02, 0.02, 0.002)
	locked.SetDraggable(false)
	g.AddPolygon(locked)
	g.AddPolygon(square(0.0105, 0.0105, 0.002))

	t.Run("first draggable containing the point", func(t *testing.T) {
		idx, ok := g.PolygonAt(0.0105, 0.0105)
		require.True(t, ok)
		assert.Equal(t, 0, idx)

		idx, ok = g.PolygonAt(0.0122, 0.0122)
		require.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("not draggable is skipped", func(t *testing.T) {
		_, ok := g.PolygonAt(0.02, 0.02)
		assert.False(t, ok)
	})

	t.Run("empty spot", func(t *testing.T) {
		idx, ok := g.PolygonAt(0.0, 0.02)
		assert.False(t, ok)
		assert.Equal(t, -1, idx)
	})
}
