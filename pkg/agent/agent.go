// Package agent drives one traveler over the graph while obstacles move around it.
package agent

import (
	"time"

	"lintang/congestionnav/pkg/geo"
	"lintang/congestionnav/pkg/graph"
	"lintang/congestionnav/pkg/server"

	"golang.org/x/exp/rand"
)

type Type int

const (
	// Dynamic replans around obstacles.
	Dynamic Type = iota
	// Static follows its first plain path and only waits when blocked.
	Static
)

func (t Type) String() string {
	switch t {
	case Dynamic:
		return "dynamic"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// DefaultSpeed meters per tick.
const DefaultSpeed = 100.0

type Metrics struct {
	Moves       int           `json:"moves"`
	Dist        float64       `json:"dist"`
	Replans     int           `json:"replans"`
	ProcessTime time.Duration `json:"process_time"`
}

type Agent struct {
	typ      Type
	position geo.Point
	history  []int64

	start   int64
	current int64
	end     int64

	planned []int64
	cursor  int

	progress float64
	speed    float64
	next     int64
	moving   bool

	cache *cellCache

	metrics Metrics
}

// New creates an agent idle at start. The initial path is obstacle-aware for Dynamic, plain for
// Static; the search time counts as processing time.
func New(g *graph.DynamicGraph, typ Type, start, end int64, speed float64) (*Agent, error) {
	startP, ok := g.Point(start)
	if !ok {
		return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "unknown start point %d", start)
	}
	if !g.HasPoint(end) {
		return nil, server.WrapErrorf(nil, server.ErrBadParamInput, "unknown end point %d", end)
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}

	a := &Agent{
		typ:      typ,
		position: startP,
		history:  []int64{start},
		start:    start,
		current:  start,
		end:      end,
		speed:    speed,
		next:     -1,
		cache:    newCellCache(),
	}

	t0 := time.Now()
	if typ == Static {
		a.planned = g.FindPathAStar(start, end)
	} else {
		a.planned = g.FindPathAStarConsideringPolygons(start, end)
	}
	a.metrics.ProcessTime += time.Since(t0)
	return a, nil
}

// InitPair picks a random start != end pair that has a non-empty plain path and creates a
// (dynamic, static) agent pair on it. Gives up after maxTries draws.
func InitPair(g *graph.DynamicGraph, rng *rand.Rand, speed float64, maxTries int) (*Agent, *Agent, error) {
	ids := g.PointIDs()
	if len(ids) < 2 {
		return nil, nil, server.WrapErrorf(nil, server.ErrNotFound, "graph has %d points, need at least 2", len(ids))
	}

	for try := 0; try < maxTries; try++ {
		start := ids[rng.Intn(len(ids))]
		end := start
		for end == start {
			end = ids[rng.Intn(len(ids))]
		}
		if len(g.FindPathAStar(start, end)) == 0 {
			continue
		}

		dynamic, err := New(g, Dynamic, start, end, speed)
		if err != nil {
			return nil, nil, err
		}
		static, err := New(g, Static, start, end, speed)
		if err != nil {
			return nil, nil, err
		}
		return dynamic, static, nil
	}
	return nil, nil, server.WrapErrorf(nil, server.ErrNotFound, "no connected start/end pair after %d tries", maxTries)
}

func (a *Agent) Type() Type { return a.typ }
func (a *Agent) Position() geo.Point { return a.position }
func (a *Agent) Start() int64 { return a.start }
func (a *Agent) End() int64 { return a.end }
func (a *Agent) CurrentID() int64 { return a.current }
func (a *Agent) Arrived() bool { return a.current == a.end }
func (a *Agent) Moving() bool { return a.moving }
func (a *Agent) Progress() float64 { return a.progress }
func (a *Agent) Metrics() Metrics { return a.metrics }
func (a *Agent) Speed() float64 { return a.speed }
func (a *Agent) NextID() (int64, bool) { return a.next, a.moving }

// Path visited node ids, start included.
func (a *Agent) Path() []int64 {
	out := make([]int64, len(a.history))
	copy(out, a.history)
	return out
}

// Planned remaining planned node ids from the cursor.
func (a *Agent) Planned() []int64 {
	if a.cursor >= len(a.planned) {
		return []int64{}
	}
	out := make([]int64, len(a.planned)-a.cursor)
	copy(out, a.planned[a.cursor:])
	return out
}

// UnsafeCells merged occupied cells seen at the last cache refresh, sorted.
func (a *Agent) UnsafeCells() []geo.Cell {
	return a.cache.unsafe.Sorted()
}
