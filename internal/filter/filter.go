// Package filter provides the pure record filters behind the table view.
// All functions are simple: []Record in, []Record out. No side effects.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/tabula/internal/record"
)

// Status selects records by their derived status.
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Statuses lists the selector values in tab order.
var Statuses = []Status{StatusAll, StatusActive, StatusInactive}

// ParseStatus validates a status name. The empty string means all.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusActive, StatusInactive:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid status %q", s)
}

// Next returns the status after s in tab order, wrapping around.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusAll
}

// Label is the tab caption for s.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	default:
		return "All"
	}
}

// Spec is the active filter set. Zero From/To mean the bound is unset.
type Spec struct {
	Search string
	Status Status
	From   time.Time
	To     time.Time
}

// DefaultSpec matches every record.
func DefaultSpec() Spec {
	return Spec{Status: StatusAll}
}

// Equal reports whether two specs select the same records.
func (s Spec) Equal(o Spec) bool {
	return s.Search == o.Search &&
		s.normStatus() == o.normStatus() &&
		s.From.Equal(o.From) &&
		s.To.Equal(o.To)
}

func (s Spec) normStatus() Status {
	if s.Status == "" {
		return StatusAll
	}
	return s.Status
}

// ClearDates drops both date bounds.
func (s Spec) ClearDates() Spec {
	s.From = time.Time{}
	s.To = time.Time{}
	return s
}

// Patch is a partial filter update. Nil fields are left alone; a pointer to
// the zero time clears that bound.
type Patch struct {
	Search *string
	Status *Status
	From   *time.Time
	To     *time.Time
}

// Merge applies p on top of s.
func (s Spec) Merge(p Patch) Spec {
	if p.Search != nil {
		s.Search = *p.Search
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.From != nil {
		s.From = dateOnly(*p.From)
	}
	if p.To != nil {
		s.To = dateOnly(*p.To)
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return record.TruncateDate(t)
}

// Apply returns the records matching every active filter, in input order.
func Apply(records []record.Record, spec Spec) []record.Record {
	result := make([]record.Record, 0, len(records))
	needle := strings.ToLower(spec.Search)

	for _, rec := range records {
		if !matchesSearch(rec, needle) {
			continue
		}
		if !matchesStatus(rec, spec.normStatus()) {
			continue
		}
		if !matchesDates(rec, spec.From, spec.To) {
			continue
		}
		result = append(result, rec)
	}
	return result
}

// BySearch keeps records where any field's text contains search,
// case-insensitively. Empty search keeps everything.
func BySearch(records []record.Record, search string) []record.Record {
	return Apply(records, Spec{Search: search})
}

// ByStatus keeps records whose status equals status. StatusAll keeps everything.
func ByStatus(records []record.Record, status Status) []record.Record {
	return Apply(records, Spec{Status: status})
}

// ByDateRange keeps records whose createdAt lies within [from, to]. Zero
// bounds are unset.
func ByDateRange(records []record.Record, from, to time.Time) []record.Record {
	return Apply(records, Spec{From: from, To: to})
}

// matchesSearch expects needle already lowercased.
func matchesSearch(rec record.Record, needle string) bool {
	if needle == "" {
		return true
	}
	for _, v := range rec {
		if strings.Contains(strings.ToLower(v.Text()), needle) {
			return true
		}
	}
	return false
}

func matchesStatus(rec record.Record, status Status) bool {
	if status == StatusAll {
		return true
	}
	return rec.Get(record.FieldStatus).Text() == string(status)
}

// matchesDates fails a set bound when createdAt is missing or unparseable.
// Unset bounds never look at createdAt.
func matchesDates(rec record.Record, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	created, ok := rec.Get(record.FieldCreatedAt).Date()
	if !ok {
		return false
	}
	if !from.IsZero() && created.Before(from) {
		return false
	}
	if !to.IsZero() && created.After(to) {
		return false
	}
	return true
}

// DateBounds returns the earliest and latest createdAt among records.
// ok is false when no record carries a usable date.
func DateBounds(records []record.Record) (min, max time.Time, ok bool) {
	for _, rec := range records {
		d, has := rec.Get(record.FieldCreatedAt).Date()
		if !has {
			continue
		}
		if !ok || d.Before(min) {
			min = d
		}
		if !ok || d.After(max) {
			max = d
		}
		ok = true
	}
	return min, max, ok
}
