package occupancy

import (
	"sort"

	"lintang/congestionnav/pkg/geo"
)

type CellSet map[geo.Cell]struct{}

func NewCellSet(cells ...geo.Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

func (s CellSet) Add(c geo.Cell) {
	s[c] = struct{}{}
}

func (s CellSet) Contains(c geo.Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Len() int {
	return len(s)
}

func (s CellSet) Equal(o CellSet) bool {
	if len(s) != len(o) {
		return false
	}
	for c := range s {
		if _, ok := o[c]; !ok {
			return false
		}
	}
	return true
}

// Union adds every cell of o into s.
func (s CellSet) Union(o CellSet) {
	for c := range o {
		s[c] = struct{}{}
	}
}

func (s CellSet) Sorted() []geo.Cell {
	cells := make([]geo.Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}
