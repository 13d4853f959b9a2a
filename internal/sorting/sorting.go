// Package sorting orders records by a single field.
package sorting

import (
	"sort"

	"github.com/abelbrown/tabula/internal/record"
)

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Spec names the sort field. An empty Field means no sort.
type Spec struct {
	Field     string
	Direction Direction
}

// None is the unsorted spec.
func None() Spec {
	return Spec{Direction: Asc}
}

// Active reports whether a field is selected.
func (s Spec) Active() bool {
	return s.Field != ""
}

// Toggle returns the spec after a header click on field: the same field
// flips direction, a different field sorts ascending.
func (s Spec) Toggle(field string) Spec {
	if s.Field == field && s.Direction != Desc {
		return Spec{Field: field, Direction: Desc}
	}
	return Spec{Field: field, Direction: Asc}
}

// Apply returns a sorted copy of records. Without a field the copy keeps
// input order. The sort is stable and puts null or missing values last in
// both directions.
func Apply(records []record.Record, spec Spec) []record.Record {
	result := make([]record.Record, len(records))
	copy(result, records)
	if !spec.Active() {
		return result
	}

	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}

	sort.SliceStable(result, func(i, j int) bool {
		return compare(result[i].Get(spec.Field), result[j].Get(spec.Field), sign) < 0
	})
	return result
}

// compare orders a before b. Nulls go last regardless of sign.
func compare(a, b record.Value, sign int) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return 1
	case b.IsNull():
		return -1
	}
	return record.Compare(a, b) * sign
}
