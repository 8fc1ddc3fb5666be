// Package obstacle moving convex congestion zones.
package obstacle

import (
	"math"

	"lintang/congestionnav/pkg/geo"

	"github.com/paulmach/orb"
)

// CellChecker is the part of the spatial index a polygon needs to validate a move.
type CellChecker interface {
	Has(c geo.Cell) bool
	CellSize() float64
}

// Polygon convex obstacle. Points must stay convex and CCW, PointInConvexPolygon relies on it;
// every mutation here is a pure translation so the shape is preserved.
type Polygon struct {
	Points    []geo.Point
	Center    geo.Point
	VelocityX float64
	VelocityY float64

	// Draggable polygon boleh dipindah manual. Dragging artinya sedang dipindah manual,
	// gerak otomatis berhenti selama itu.
	Draggable bool
	Dragging  bool
}

func NewPolygon(points []geo.Point, center geo.Point) Polygon {
	return Polygon{
		Points:    points,
		Center:    center,
		Draggable: true,
	}
}

// IsEmpty true for the degenerate polygon returned when no obstacle could be generated.
func (p *Polygon) IsEmpty() bool {
	return len(p.Points) < 3
}

func (p *Polygon) Contains(pt geo.Point) bool {
	return geo.PointInConvexPolygon(p.Points, pt)
}

func (p *Polygon) Bound() orb.Bound {
	return geo.BoundOf(p.Points)
}

func (p *Polygon) Speed() float64 {
	return math.Hypot(p.VelocityX, p.VelocityY)
}

func (p *Polygon) translate(dx, dy float64) {
	p.Center.X += dx
	p.Center.Y += dy
	for i := range p.Points {
		p.Points[i].X += dx
		p.Points[i].Y += dy
	}
}

// UpdatePosition moves the polygon by (dx, dy) only when the new center falls in a populated cell.
// Returns false and leaves the polygon untouched otherwise.
func (p *Polygon) UpdatePosition(dx, dy float64, grid CellChecker) bool {
	newCenterX := p.Center.X + dx
	newCenterY := p.Center.Y + dy

	if !grid.Has(geo.CellOf(newCenterX, newCenterY, grid.CellSize())) {
		return false
	}

	p.translate(dx, dy)
	return true
}

// MoveTo puts the center on (x, y), used while dragging. No grid validation here.
func (p *Polygon) MoveTo(x, y float64) {
	p.translate(x-p.Center.X, y-p.Center.Y)
}

func (p *Polygon) SetDragging(dragging bool) {
	p.Dragging = dragging
}

func (p *Polygon) SetDraggable(draggable bool) {
	p.Draggable = draggable
}

// Clone deep copy, vertex slice is not shared.
func (p Polygon) Clone() Polygon {
	c := p
	c.Points = make([]geo.Point, len(p.Points))
	copy(c.Points, p.Points)
	return c
}

// SameShape compares vertex coordinates only.
func (p *Polygon) SameShape(o *Polygon) bool {
	if len(p.Points) != len(o.Points) {
		return false
	}
	for i := range p.Points {
		if !p.Points[i].SameLocation(o.Points[i]) {
			return false
		}
	}
	return true
}
