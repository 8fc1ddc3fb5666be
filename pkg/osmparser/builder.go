// Package osmparser loads road graphs, either from the plain point/edge text format or from an
// openstreetmap pbf extract.
package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"lintang/congestionnav/pkg/datastructure"
	"lintang/congestionnav/pkg/server"
)

// Builder the graph operations a loader needs.
type Builder interface {
	AddPoint(id int64, x, y float64)
	AddEdge(u, v int64, dist float64) (datastructure.EdgeID, error)
	HasPoint(id int64) bool
}

type Stats struct {
	Points int
	Edges  int
}

const (
	FormatPlain = "plain"
	FormatOSM   = "osm"
	FormatAuto  = "auto"
)

// LoadFile reads path into b. FormatAuto picks osm for *.pbf and plain otherwise.
func LoadFile(ctx context.Context, path, format string, b Builder, showProgress bool) (Stats, error) {
	if format == "" || format == FormatAuto {
		format = FormatPlain
		if strings.HasSuffix(strings.ToLower(filepath.Base(path)), ".pbf") {
			format = FormatOSM
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return Stats{}, server.WrapErrorf(err, server.ErrNotFound, "open graph file %s", path)
	}
	defer f.Close()

	switch format {
	case FormatPlain:
		return LoadPlain(f, b)
	case FormatOSM:
		return LoadOSM(ctx, f, b, showProgress)
	default:
		return Stats{}, server.WrapErrorf(nil, server.ErrBadParamInput, "unknown graph format %q", format)
	}
}
