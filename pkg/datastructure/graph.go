package datastructure

import (
	"lintang/congestionnav/pkg/geo"

	"github.com/twpayne/go-polyline"
)

// EdgeID stable handle into the graph edge arena. Index structures keep handles, never pointers,
// so growing an adjacency list can't leave them dangling.
type EdgeID int32

const InvalidEdgeID EdgeID = -1

// Edge directed road segment From -> To. Dist in meters.
type Edge struct {
	ID   EdgeID
	From int64
	To   int64
	Dist float64
}

// RenderPath encode path jadi google polyline string ([lat, lon] order).
func RenderPath(path []geo.Point) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Y, p.X})
	}
	return string(polyline.EncodeCoords(coords))
}

// DecodePath kebalikan RenderPath. Points are synthetic (ID -1).
func DecodePath(encoded string) ([]geo.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	path := make([]geo.Point, 0, len(coords))
	for _, c := range coords {
		path = append(path, geo.NewSyntheticPoint(c[1], c[0]))
	}
	return path, nil
}
