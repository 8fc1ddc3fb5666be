package graph

import (
	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/util"
)

type edgeFilter func(from, to int64) bool

// FindPathAStar shortest path from start to goal, haversine heuristic. The path excludes start and
// is in travel order. Unknown ids, start == goal and unreachable goal all give an empty path.
func (g *DynamicGraph) FindPathAStar(start, goal int64) []int64 {
	return g.aStar(start, goal, nil)
}

// FindPathAStarConsideringPolygons like FindPathAStar but skips every edge with an endpoint inside
// an obstacle. Only endpoints are tested, an edge whose interior crosses an obstacle is still used.
// Falls back to the unrestricted search when the goal is covered or no safe path exists.
func (g *DynamicGraph) FindPathAStarConsideringPolygons(start, goal int64) []int64 {
	path, _ := g.FindPathAvoidingPolygons(start, goal)
	return path
}

// FindPathAvoidingPolygons same result as FindPathAStarConsideringPolygons, safe is false when the
// returned path came from the unrestricted fallback.
func (g *DynamicGraph) FindPathAvoidingPolygons(start, goal int64) (path []int64, safe bool) {
	if !g.HasPoint(start) || !g.HasPoint(goal) {
		return []int64{}, false
	}
	if g.nodeInAnyPolygon(goal) {
		return g.aStar(start, goal, nil), false
	}

	path = g.aStar(start, goal, func(from, to int64) bool {
		return !g.nodeInAnyPolygon(from) && !g.nodeInAnyPolygon(to)
	})
	if len(path) > 0 {
		return path, true
	}
	return g.aStar(start, goal, nil), false
}

func (g *DynamicGraph) aStar(start, goal int64, allow edgeFilter) []int64 {
	startP, ok := g.points[start]
	if !ok {
		return []int64{}
	}
	goalP, ok := g.points[goal]
	if !ok || start == goal {
		return []int64{}
	}

	costSoFar := map[int64]float64{start: 0}
	cameFrom := make(map[int64]int64)

	heap := newMinHeap()
	heap.Insert(geo.HaversineDistance(startP, goalP), 0, start)

	for heap.Size() > 0 {
		current, _ := heap.ExtractMin()
		if current.Item == goal {
			return reconstructPath(cameFrom, start, goal)
		}

		g0 := costSoFar[current.Item]
		// entry stale
		if current.Cost > g0 {
			continue
		}

		for _, eid := range g.adj[current.Item] {
			e := g.edges[eid]
			if allow != nil && !allow(e.From, e.To) {
				continue
			}
			newCost := g0 + e.Dist
			if old, seen := costSoFar[e.To]; seen && newCost >= old {
				continue
			}
			costSoFar[e.To] = newCost
			cameFrom[e.To] = current.Item
			heap.Insert(newCost+g.heuristic(e.To, goalP), newCost, e.To)
		}
	}
	return []int64{}
}

func (g *DynamicGraph) heuristic(id int64, goal geo.Point) float64 {
	return geo.HaversineDistance(g.points[id], goal)
}

func reconstructPath(cameFrom map[int64]int64, start, goal int64) []int64 {
	path := []int64{}
	for curr := goal; curr != start; curr = cameFrom[curr] {
		path = append(path, curr)
	}
	util.ReverseG(path)
	return path
}

// PathDistance sum of edge weights along start + path, using the cheapest parallel edge.
func (g *DynamicGraph) PathDistance(start int64, path []int64) float64 {
	total := 0.0
	prev := start
	for _, next := range path {
		best := -1.0
		for _, eid := range g.adj[prev] {
			e := g.edges[eid]
			if e.To == next && (best < 0 || e.Dist < best) {
				best = e.Dist
			}
		}
		if best >= 0 {
			total += best
		}
		prev = next
	}
	return total
}

// PathPoints coordinates of start followed by every node of path.
func (g *DynamicGraph) PathPoints(start int64, path []int64) []geo.Point {
	pts := make([]geo.Point, 0, len(path)+1)
	if p, ok := g.points[start]; ok {
		pts = append(pts, p)
	}
	for _, id := range path {
		if p, ok := g.points[id]; ok {
			pts = append(pts, p)
		}
	}
	return pts
}
