package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortDirection is the sort order applied to a column.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// SortState names the sorted column and its direction. The zero value is
// unsorted.
type SortState struct {
	Column    string
	Direction SortDirection
}

// Next returns the state after another activation of column: repeated
// activations cycle ascending, descending, then back to unsorted.
// Activating a different column starts over at ascending.
func (s SortState) Next(column string) SortState {
	if s.Column != column {
		return SortState{Column: column, Direction: SortAsc}
	}
	switch s.Direction {
	case SortAsc:
		return SortState{Column: column, Direction: SortDesc}
	case SortDesc:
		return SortState{}
	default:
		return SortState{Column: column, Direction: SortAsc}
	}
}

// ParseSort reads a --sort flag value of the form "column", "column:asc" or
// "column:desc". Empty input is unsorted.
func ParseSort(value string) (SortState, error) {
	if value == "" {
		return SortState{}, nil
	}
	column, direction, found := strings.Cut(value, ":")
	if column == "" {
		return SortState{}, fmt.Errorf("render: empty sort column in %q", value)
	}
	if !found || direction == "asc" {
		return SortState{Column: column, Direction: SortAsc}, nil
	}
	if direction == "desc" {
		return SortState{Column: column, Direction: SortDesc}, nil
	}
	return SortState{}, fmt.Errorf("render: sort direction %q is not asc or desc", direction)
}

// sorted returns rows ordered by the current sort state. The input slice is
// left untouched; sorting covers only the loaded page.
func (r *Renderer[T]) sorted(rows []T) []T {
	if r.Sort.Direction == SortNone || r.Sort.Column == "" {
		return rows
	}

	var target *Column[T]
	for i := range r.Table.Columns {
		if r.Table.Columns[i].ID == r.Sort.Column {
			target = &r.Table.Columns[i]
			break
		}
	}
	if target == nil || !target.Sortable {
		return rows
	}

	out := append([]T(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareValues(target.Value(out[i]), target.Value(out[j]))
		if r.Sort.Direction == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// compareValues orders two cell values, numerically when both parse as
// numbers, lexically otherwise.
func compareValues(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
