package geo

import "math"

// Cell is a uniform grid coordinate, (floor(x/cellSize), floor(y/cellSize)).
type Cell struct {
	I int
	J int
}

func CellOf(x, y, cellSize float64) Cell {
	return Cell{
		I: int(math.Floor(x / cellSize)),
		J: int(math.Floor(y / cellSize)),
	}
}

func CellOfPoint(p Point, cellSize float64) Cell {
	return CellOf(p.X, p.Y, cellSize)
}

// Origin returns the lower-left corner of the cell.
func (c Cell) Origin(cellSize float64) (float64, float64) {
	return float64(c.I) * cellSize, float64(c.J) * cellSize
}

// Corners returns the four corners of the cell box in CCW order starting at the lower-left one.
func (c Cell) Corners(cellSize float64) [4]Point {
	x0, y0 := c.Origin(cellSize)
	x1, y1 := x0+cellSize, y0+cellSize
	return [4]Point{
		NewSyntheticPoint(x0, y0),
		NewSyntheticPoint(x1, y0),
		NewSyntheticPoint(x1, y1),
		NewSyntheticPoint(x0, y1),
	}
}

// Less orders cells by I then J.
func (c Cell) Less(o Cell) bool {
	if c.I != o.I {
		return c.I < o.I
	}
	return c.J < o.J
}

// CellRange returns the inclusive cell range covering the box [minX,maxX]x[minY,maxY].
func CellRange(minX, minY, maxX, maxY, cellSize float64) (iMin, jMin, iMax, jMax int) {
	lo := CellOf(minX, minY, cellSize)
	hi := CellOf(maxX, maxY, cellSize)
	return lo.I, lo.J, hi.I, hi.J
}
