package geo

import (
	"github.com/golang/geo/s2"
)

// ProjectPointToSegment projects p onto the great-circle segment ab and returns the projected
// coordinate as a synthetic point.
func ProjectPointToSegment(p, a, b Point) Point {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Y, a.X))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Y, b.X))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Y, p.X))
	if aS2.ApproxEqual(bS2) {
		return NewSyntheticPoint(a.X, a.Y)
	}

	projection := s2.Project(pS2, aS2, bS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return NewSyntheticPoint(projectLatLng.Lng.Degrees(), projectLatLng.Lat.Degrees())
}
