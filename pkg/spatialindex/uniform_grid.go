// Package spatialindex broad-phase index over graph edges.
package spatialindex

import (
	"math"
	"sort"

	"lintang/congestionnav/pkg/datastructure"
	"lintang/congestionnav/pkg/geo"
)

const DefaultCellSize = 0.01

// UniformGrid maps a cell to every edge whose bounding box overlaps it. A reference in a cell does
// not mean the segment itself crosses the cell area.
//
// cellSize is fixed after construction; changing it would invalidate every stored assignment.
type UniformGrid struct {
	cells    map[geo.Cell][]datastructure.EdgeID
	cellSize float64
}

func NewUniformGrid(cellSize float64) *UniformGrid {
	if cellSize <= 0 || math.IsNaN(cellSize) || math.IsInf(cellSize, 0) {
		cellSize = DefaultCellSize
	}
	return &UniformGrid{
		cells:    make(map[geo.Cell][]datastructure.EdgeID),
		cellSize: cellSize,
	}
}

// Insert appends the edge handle to every cell of the [iMin..iMax] x [jMin..jMax] range covering
// the bbox of segment uv.
func (g *UniformGrid) Insert(id datastructure.EdgeID, u, v geo.Point) {
	iMin, jMin, iMax, jMax := geo.CellRange(math.Min(u.X, v.X), math.Min(u.Y, v.Y),
		math.Max(u.X, v.X), math.Max(u.Y, v.Y), g.cellSize)

	for i := iMin; i <= iMax; i++ {
		for j := jMin; j <= jMax; j++ {
			c := geo.Cell{I: i, J: j}
			g.cells[c] = append(g.cells[c], id)
		}
	}
}

// Edges returns the handles stored at c. Nil when the cell has nothing nearby.
func (g *UniformGrid) Edges(c geo.Cell) []datastructure.EdgeID {
	return g.cells[c]
}

// Has reports whether c holds at least one edge (a populated road cell).
func (g *UniformGrid) Has(c geo.Cell) bool {
	return len(g.cells[c]) > 0
}

func (g *UniformGrid) CellSize() float64 {
	return g.cellSize
}

func (g *UniformGrid) CellOf(x, y float64) geo.Cell {
	return geo.CellOf(x, y, g.cellSize)
}

// Len jumlah cell yang punya edge.
func (g *UniformGrid) Len() int {
	n := 0
	for _, edges := range g.cells {
		if len(edges) > 0 {
			n++
		}
	}
	return n
}

// NonEmptyCells sorted by (I, J) so callers sampling from it stay deterministic for a fixed seed.
func (g *UniformGrid) NonEmptyCells() []geo.Cell {
	cells := make([]geo.Cell, 0, len(g.cells))
	for c, edges := range g.cells {
		if len(edges) > 0 {
			cells = append(cells, c)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}

// Reset drops every assignment. Used when the edge arena is rebuilt.
func (g *UniformGrid) Reset() {
	g.cells = make(map[geo.Cell][]datastructure.EdgeID)
}
