package agent_test

import (
	"testing"

	"lintang/congestionnav/pkg/agent"
	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/obstacle"
	"lintang/congestionnav/pkg/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
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

// 7 - 8 - 9
// |   |   |
// 4 - 5 - 6
// |   |   |
// 1 - 2 - 3
func gridGraph(t *testing.T) *graph.DynamicGraph {
	g := graph.NewDynamicGraph(0.005, obstacle.DefaultMotionConfig(), 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			g.AddPoint(int64(r*3+c+1), float64(c)*0.01, float64(r)*0.01)
		}
	}
	for _, e := range [][2]int64{{1, 2}, {2, 3}, {4, 5}, {5, 6}, {7, 8}, {8, 9}, {1, 4}, {4, 7}, {2, 5}, {5, 8}, {3, 6}, {6, 9}} {
		pu, _ := g.Point(e[0])
		pv, _ := g.Point(e[1])
		require.NoError(t, g.AddBidirectionalEdge(e[0], e[1], geo.HaversineDistance(pu, pv)))
	}
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

func runUntilArrived(g *graph.DynamicGraph, a *agent.Agent, maxTicks int) int {
	ticks := 0
	for !a.Arrived() && ticks < maxTicks {
		a.Move(g)
		ticks++
	}
	return ticks
}

func TestNew(t *testing.T) {
	g := lineGraph(t)

	a, err := agent.New(g, agent.Static, 1, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, agent.DefaultSpeed, a.Speed())
	assert.Equal(t, []int64{2, 3}, a.Planned())
	assert.Equal(t, []int64{1}, a.Path())
	assert.False(t, a.Moving())
	assert.Equal(t, int64(1), a.CurrentID())

	_, err = agent.New(g, agent.Dynamic, 1, 99, 100)
	assert.Equal(t, server.ErrBadParamInput, server.CodeOf(err))
}

func TestAgentTravelsHaversineDistance(t *testing.T) {
	g := lineGraph(t)
	for _, typ := range []agent.Type{agent.Static, agent.Dynamic} {
		t.Run(typ.String(), func(t *testing.T) {
			a, err := agent.New(g, typ, 1, 3, 10000)
			require.NoError(t, err)

			runUntilArrived(g, a, 1000)
			require.True(t, a.Arrived())
			assert.Equal(t, []int64{1, 2, 3}, a.Path())

			p1, _ := g.Point(1)
			p2, _ := g.Point(2)
			p3, _ := g.Point(3)
			want := geo.HaversineDistance(p1, p2) + geo.HaversineDistance(p2, p3)
			assert.InDelta(t, want, a.Metrics().Dist, 1e-6)
			assert.NotEqual(t, 200.0, a.Metrics().Dist)
			assert.Equal(t, p3, a.Position())
		})
	}
}

func TestAgentArrivesWithStaticObstacles(t *testing.T) {
	g := gridGraph(t)
	// obstacle di tengah, tidak bergerak
	g.AddPolygon(square(0.01, 0.01, 0.002))

	dynamic, err := agent.New(g, agent.Dynamic, 1, 9, 100)
	require.NoError(t, err)
	assert.NotContains(t, dynamic.Planned(), int64(5))

	runUntilArrived(g, dynamic, 10000)
	assert.True(t, dynamic.Arrived())
	assert.NotContains(t, dynamic.Path(), int64(5))

	// moves terus bertambah setelah sampai? tidak
	moves := dynamic.Metrics().Moves
	dynamic.Move(g)
	assert.Equal(t, moves, dynamic.Metrics().Moves)
}

func TestStaticAgentWaits(t *testing.T) {
	g := gridGraph(t)
	a, err := agent.New(g, agent.Static, 2, 8, 100)
	require.NoError(t, err)
	require.Equal(t, []int64{5, 8}, a.Planned())

	g.AddPolygon(square(0.01, 0.01, 0.002))
	start := a.Position()
	for i := 0; i < 50; i++ {
		a.Move(g)
	}
	assert.Equal(t, start, a.Position())
	assert.Equal(t, int64(2), a.CurrentID())
	assert.Equal(t, 50, a.Metrics().Moves)
	assert.Equal(t, 0, a.Metrics().Replans)
	assert.Equal(t, []int64{5, 8}, a.Planned())

	g.ClearPolygons()
	runUntilArrived(g, a, 10000)
	assert.True(t, a.Arrived())
	assert.Equal(t, []int64{2, 5, 8}, a.Path())
}

func TestDynamicAgentReplans(t *testing.T) {
	g := gridGraph(t)
	a, err := agent.New(g, agent.Dynamic, 2, 8, 100)
	require.NoError(t, err)
	require.Equal(t, []int64{5, 8}, a.Planned())

	g.AddPolygon(square(0.01, 0.01, 0.002))
	a.Move(g)

	assert.Equal(t, 1, a.Metrics().Replans)
	assert.NotContains(t, a.Planned(), int64(5))
	assert.Len(t, a.Planned(), 4)
	assert.True(t, a.Moving())

	center := geo.CellOf(0.01, 0.01, g.CellSize())
	assert.Contains(t, a.UnsafeCells(), center)

	runUntilArrived(g, a, 10000)
	assert.True(t, a.Arrived())
	assert.NotContains(t, a.Path(), int64(5))
	assert.Equal(t, 1, a.Metrics().Replans)
}

func TestInitPair(t *testing.T) {
	g := gridGraph(t)
	rng := rand.New(rand.NewSource(11))

	dynamic, static, err := agent.InitPair(g, rng, 100, 50)
	require.NoError(t, err)
	assert.Equal(t, agent.Dynamic, dynamic.Type())
	assert.Equal(t, agent.Static, static.Type())
	assert.Equal(t, dynamic.Start(), static.Start())
	assert.Equal(t, dynamic.End(), static.End())
	assert.NotEqual(t, dynamic.Start(), dynamic.End())
	assert.Equal(t, []int64{dynamic.Start()}, dynamic.Path())
	assert.NotEmpty(t, static.Planned())

	single := graph.NewDynamicGraph(0.01, obstacle.DefaultMotionConfig(), 1)
	single.AddPoint(1, 0, 0)
	_, _, err = agent.InitPair(single, rng, 100, 5)
	assert.Error(t, err)

	disconnected := graph.NewDynamicGraph(0.01, obstacle.DefaultMotionConfig(), 1)
	disconnected.AddPoint(1, 0, 0)
	disconnected.AddPoint(2, 1, 1)
	_, _, err = agent.InitPair(disconnected, rng, 100, 5)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
}

func TestDynamicAgentBlockedGoal(t *testing.T) {
	g := gridGraph(t)
	a, err := agent.New(g, agent.Dynamic, 2, 8, 100)
	require.NoError(t, err)

	// goal tertutup: rute aman tidak ada, fallback ke rute biasa
	g.AddPolygon(square(0.01, 0.02, 0.002))
	goalCell := geo.CellOf(0.01, 0.02, g.CellSize())

	for i := 0; i < 40; i++ {
		a.Move(g)
	}
	require.False(t, a.Arrived())
	assert.Equal(t, int64(5), a.CurrentID())
	assert.Equal(t, []int64{8}, a.Planned())
	assert.False(t, a.Moving())
	// cell yang sama terus kena, tidak replan tiap tick
	assert.Equal(t, 1, a.Metrics().Replans)
	assert.Contains(t, a.UnsafeCells(), goalCell)

	t.Run("unsafe cells follow the obstacles", func(t *testing.T) {
		g.AddPolygon(square(0, 0, 0.001))
		a.Move(g)
		assert.Contains(t, a.UnsafeCells(), geo.Cell{I: -1, J: -1})

		require.NoError(t, g.MovePolygonTo(1, 0.02, 0))
		a.Move(g)
		assert.Contains(t, a.UnsafeCells(), geo.CellOf(0.02, 0, g.CellSize()))
		assert.NotContains(t, a.UnsafeCells(), geo.Cell{I: -1, J: -1})

		keep := g.Polygons()[0].Clone()
		g.ClearPolygons()
		g.AddPolygon(keep)
		a.Move(g)
		assert.NotContains(t, a.UnsafeCells(), geo.CellOf(0.02, 0, g.CellSize()))
		assert.Contains(t, a.UnsafeCells(), goalCell)
		assert.Equal(t, 1, a.Metrics().Replans)
		assert.Equal(t, int64(5), a.CurrentID())
	})

	t.Run("departs once the goal is uncovered", func(t *testing.T) {
		// cell goal masih tersentuh, node 8 sudah di luar polygon
		require.NoError(t, g.MovePolygonTo(0, 0.0135, 0.02))
		runUntilArrived(g, a, 1000)
		assert.True(t, a.Arrived())
		assert.Equal(t, []int64{2, 5, 8}, a.Path())
		assert.Equal(t, 1, a.Metrics().Replans)
	})
}
