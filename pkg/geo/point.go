package geo

// Point is a graph node or a synthetic vertex. X is longitude and Y is latitude, both in degrees.
// ID is -1 for points that are not graph nodes.
type Point struct {
	ID int64
	X  float64
	Y  float64
}

func NewPoint(id int64, x, y float64) Point {
	return Point{ID: id, X: x, Y: y}
}

// NewSyntheticPoint bikin point yang bukan node graph (vertex polygon, center, posisi agent).
func NewSyntheticPoint(x, y float64) Point {
	return Point{ID: -1, X: x, Y: y}
}

func (p Point) Sub(o Point) Point {
	return Point{ID: -1, X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Add(o Point) Point {
	return Point{ID: -1, X: p.X + o.X, Y: p.Y + o.Y}
}

// SameLocation compares coordinates only.
func (p Point) SameLocation(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// Lerp linear interpolation antara p dan o, t di [0,1].
func (p Point) Lerp(o Point, t float64) Point {
	return Point{
		ID: -1,
		X:  p.X + (o.X-p.X)*t,
		Y:  p.Y + (o.Y-p.Y)*t,
	}
}
