package obstacle

import (
	"math"

	"lintang/congestionnav/pkg/geo"

	"golang.org/x/exp/rand"
)

// Grid what the hex generator needs from the spatial index.
type Grid interface {
	CellChecker
	NonEmptyCells() []geo.Cell
}

// GenerateHexInGrid picks a random populated cell and builds a regular hexagon (CCW) whose center
// is sampled inside that cell, kept maxMoveDistance away from the cell border. Returns an empty
// polygon when no cell has edges.
func GenerateHexInGrid(grid Grid, hexRadius float64, rng *rand.Rand, cfg MotionConfig) Polygon {
	cells := grid.NonEmptyCells()
	if len(cells) == 0 {
		return Polygon{}
	}

	chosen := cells[rng.Intn(len(cells))]
	cellSize := grid.CellSize()
	x0, y0 := chosen.Origin(cellSize)

	margin := cfg.MaxMoveDistance
	if 2*margin >= cellSize {
		margin = 0
	}
	centerX := x0 + margin + rng.Float64()*(cellSize-2*margin)
	centerY := y0 + margin + rng.Float64()*(cellSize-2*margin)

	// floor bisa geser center ke cell tetangga kalau sampling tepat di batas atas
	if !grid.Has(geo.CellOf(centerX, centerY, cellSize)) {
		centerX = x0 + cellSize/2
		centerY = y0 + cellSize/2
	}

	hex := NewPolygon(make([]geo.Point, 0, 6), geo.NewSyntheticPoint(centerX, centerY))
	for k := 0; k < 6; k++ {
		angle := math.Pi / 3.0 * float64(k)
		hex.Points = append(hex.Points, geo.NewPoint(int64(k),
			centerX+hexRadius*math.Cos(angle),
			centerY+hexRadius*math.Sin(angle)))
	}
	return hex
}
