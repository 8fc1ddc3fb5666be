package agent

import (
	"time"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
)

// Move advances the agent one tick. Obstacles must already have moved this tick.
func (a *Agent) Move(g *graph.DynamicGraph) {
	if a.Arrived() {
		a.moving = false
		return
	}

	t0 := time.Now()
	a.metrics.Moves++

	if !a.moving {
		if a.typ == Dynamic {
			a.checkPath(g)
		}
		a.tryDepart(g)
	}

	if a.moving {
		a.advance(g)
	}

	a.metrics.ProcessTime += time.Since(t0)
}

// checkPath refreshes the cell cache and replans when an upcoming node is really covered.
func (a *Agent) checkPath(g *graph.DynamicGraph) {
	valid := a.cursor < len(a.planned)

	if valid {
		a.cache.refresh(g)

		for i := a.cursor; i < len(a.planned); i++ {
			p, _ := g.Point(a.planned[i])
			cell := geo.CellOfPoint(p, g.CellSize())

			// obstacle yang sama dengan sebelumnya, replan hasilnya hampir sama
			if a.cache.hasLastHit && a.cache.lastHit == cell {
				break
			}
			if !a.cache.pointSafe(g, p, cell) {
				valid = false
				break
			}
		}
	}

	if !valid {
		a.metrics.Replans++
		a.planned = g.FindPathAStarConsideringPolygons(a.current, a.end)
		a.cursor = 0
	}
}

// tryDepart starts interpolating toward the next planned node when neither end of the edge is
// inside an obstacle. Otherwise the agent waits in place.
func (a *Agent) tryDepart(g *graph.DynamicGraph) {
	if a.cursor >= len(a.planned) {
		return
	}
	next := a.planned[a.cursor]
	cur, _ := g.Point(a.current)
	nextP, _ := g.Point(next)

	if g.PointInAnyPolygon(cur) || g.PointInAnyPolygon(nextP) {
		return
	}
	a.next = next
	a.moving = true
	a.progress = 0
}

func (a *Agent) advance(g *graph.DynamicGraph) {
	from, _ := g.Point(a.current)
	to, _ := g.Point(a.next)

	edgeDist := geo.HaversineDistance(from, to)
	if edgeDist <= 0 {
		a.progress = 1
	} else {
		a.progress += a.speed / edgeDist
	}

	if a.progress < 1 {
		a.position = from.Lerp(to, a.progress)
		return
	}

	a.history = append(a.history, a.next)
	a.current = a.next
	a.position = to
	a.cursor++
	a.progress = 0
	a.moving = false
	a.metrics.Dist += edgeDist
}
