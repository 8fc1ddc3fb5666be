package graph

import (
	"lintang/congestionnav/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

var rtreeTol = 0.0001

type pointRect struct {
	Location rtreego.Point
	ID       int64
}

func (p *pointRect) Bounds() rtreego.Rect {
	return p.Location.ToRect(rtreeTol)
}

// BuildIndex builds the nearest-node rtree now instead of on the first NearestPoint call. Loaders
// call it once the last point is in.
func (g *DynamicGraph) BuildIndex() {
	g.rtMu.Lock()
	defer g.rtMu.Unlock()
	g.buildIndexLocked()
}

func (g *DynamicGraph) buildIndexLocked() {
	if g.rt != nil {
		return
	}
	// 2 dimension, 25 min entries dan 50 max entries
	rt := rtreego.NewTree(2, 25, 50)
	for _, id := range g.PointIDs() {
		p := g.points[id]
		rt.Insert(&pointRect{Location: rtreego.Point{p.X, p.Y}, ID: id})
	}
	g.rt = rt
}

// NearestPoint closest graph node to (x, y) in degree space. Safe for concurrent callers as long as
// no point is being added.
func (g *DynamicGraph) NearestPoint(x, y float64) (geo.Point, bool) {
	if len(g.points) == 0 {
		return geo.Point{}, false
	}

	g.rtMu.Lock()
	defer g.rtMu.Unlock()
	g.buildIndexLocked()

	nn := g.rt.NearestNeighbor(rtreego.Point{x, y})
	if nn == nil {
		return geo.Point{}, false
	}
	return g.points[nn.(*pointRect).ID], true
}
