package geo

import "math"

// Eps toleransi buat semua cross product test.
const Eps = 1e-9

func Cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// PointInConvexPolygon tests p against a convex polygon given in CCW order. Boundary points within
// Eps count as inside. Vertex 0 is the pivot; the wedge containing p is found by binary search and
// p is then tested against the triangle (pivot, poly[left], poly[right]).
//
// The polygon must be convex and CCW. This is not checked; other input gives wrong answers.
func PointInConvexPolygon(poly []Point, p Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	a := poly[0]
	ap := p.Sub(a)

	if Cross(poly[1].Sub(a), ap) < -Eps {
		return false
	}
	if Cross(poly[n-1].Sub(a), ap) > Eps {
		return false
	}

	left, right := 1, n-1
	for right-left > 1 {
		mid := (left + right) / 2
		if Cross(poly[mid].Sub(a), ap) > 0 {
			left = mid
		} else {
			right = mid
		}
	}

	c := Cross(poly[left].Sub(a), poly[right].Sub(a))
	c1 := Cross(poly[left].Sub(a), ap)
	c2 := Cross(ap, poly[right].Sub(a))

	return c1 >= -Eps && c2 >= -Eps && (c-c1-c2) >= -Eps
}

// orientation calculates the cross product (q-p) x (r-p)
func orientation(p, q, r Point) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

// onSegment checks if q lies in the bounding box of segment pr
func onSegment(p, r, q Point) bool {
	return q.X <= math.Max(p.X, r.X)+Eps && q.X >= math.Min(p.X, r.X)-Eps &&
		q.Y <= math.Max(p.Y, r.Y)+Eps && q.Y >= math.Min(p.Y, r.Y)-Eps
}

func sign(v float64) int {
	if v > Eps {
		return 1
	}
	if v < -Eps {
		return -1
	}
	return 0
}

// SegmentsIntersect reports whether segments p1p2 and p3p4 share at least one point,
// touching and collinear overlap included.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := sign(orientation(p3, p4, p1))
	d2 := sign(orientation(p3, p4, p2))
	d3 := sign(orientation(p1, p2, p3))
	d4 := sign(orientation(p1, p2, p4))

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// PointInPolygon ray casting, works for any simple polygon (convex or not).
func PointInPolygon(poly []Point, p Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := poly[i], poly[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// SegmentIntersectsPolygon checks the segment ab against every polygon edge.
func SegmentIntersectsPolygon(a, b Point, poly []Point) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		if SegmentsIntersect(a, b, poly[i], poly[(i+1)%n]) {
			return true
		}
	}
	return false
}

// IsConvexCCW reports whether poly is a strictly convex polygon with CCW vertex order.
func IsConvexCCW(poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if orientation(poly[i], poly[(i+1)%n], poly[(i+2)%n]) <= 0 {
			return false
		}
	}
	return true
}
