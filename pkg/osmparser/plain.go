package osmparser

import (
	"bufio"
	"io"
	"strconv"

	"lintang/congestionnav/pkg/server"
)

type tokenReader struct {
	sc   *bufio.Scanner
	line int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next(what string) (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", server.WrapErrorf(err, server.ErrBadParamInput, "read %s", what)
		}
		return "", server.WrapErrorf(io.ErrUnexpectedEOF, server.ErrBadParamInput, "missing %s after token %d", what, t.line)
	}
	t.line++
	return t.sc.Text(), nil
}

func (t *tokenReader) int64(what string) (int64, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrBadParamInput, "token %d: bad %s %q", t.line, what, s)
	}
	return v, nil
}

func (t *tokenReader) float64(what string) (float64, error) {
	s, err := t.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, server.WrapErrorf(err, server.ErrBadParamInput, "token %d: bad %s %q", t.line, what, s)
	}
	return v, nil
}

// LoadPlain reads
//
//	N
//	id x y      (N rows, x = lon, y = lat)
//	M
//	u v dist    (M rows, directed, dist in meters)
//
// Whitespace between tokens is free.
func LoadPlain(r io.Reader, b Builder) (Stats, error) {
	tr := newTokenReader(r)
	st := Stats{}

	numPoints, err := tr.int64("point count")
	if err != nil {
		return st, err
	}
	if numPoints < 0 {
		return st, server.WrapErrorf(nil, server.ErrBadParamInput, "negative point count %d", numPoints)
	}
	for i := int64(0); i < numPoints; i++ {
		id, err := tr.int64("point id")
		if err != nil {
			return st, err
		}
		x, err := tr.float64("point x")
		if err != nil {
			return st, err
		}
		y, err := tr.float64("point y")
		if err != nil {
			return st, err
		}
		b.AddPoint(id, x, y)
		st.Points++
	}

	numEdges, err := tr.int64("edge count")
	if err != nil {
		return st, err
	}
	if numEdges < 0 {
		return st, server.WrapErrorf(nil, server.ErrBadParamInput, "negative edge count %d", numEdges)
	}
	for i := int64(0); i < numEdges; i++ {
		u, err := tr.int64("edge source")
		if err != nil {
			return st, err
		}
		v, err := tr.int64("edge target")
		if err != nil {
			return st, err
		}
		dist, err := tr.float64("edge distance")
		if err != nil {
			return st, err
		}
		if _, err := b.AddEdge(u, v, dist); err != nil {
			return st, err
		}
		st.Edges++
	}
	return st, nil
}
