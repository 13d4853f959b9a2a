// Package augment adds the derived status and createdAt fields to freshly
// fetched records. The output depends only on record position and the
// clock, never on record content.
package augment

import (
	"time"

	"github.com/abelbrown/tabula/internal/record"
)

// Status values assigned to records.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// lookbackYears is the span of the createdAt window ending at now.
const lookbackYears = 2

// Window returns the createdAt window [now - 2 years, now].
func Window(now time.Time) (start, end time.Time) {
	return now.AddDate(-lookbackYears, 0, 0), now
}

// Apply returns copies of raw with status and createdAt set. Record i of n
// is dated start + (end-start)*i/n, truncated to a calendar date, so dates
// never decrease in fetch order. Even indices are active, odd inactive.
func Apply(raw []record.Record, now time.Time) []record.Record {
	out := make([]record.Record, len(raw))
	if len(raw) == 0 {
		return out
	}

	start, end := Window(now)
	span := float64(end.Sub(start))
	n := float64(len(raw))

	for i, r := range raw {
		// float math: span*i overflows int64 nanoseconds past ~145 records
		offset := time.Duration(span * float64(i) / n)

		rec := r.Clone()
		rec[record.FieldCreatedAt] = record.Date(start.Add(offset))
		rec[record.FieldStatus] = record.String(StatusFor(i))
		out[i] = rec
	}
	return out
}

// StatusFor returns the status assigned to the record at index i.
func StatusFor(i int) string {
	if i%2 == 0 {
		return StatusActive
	}
	return StatusInactive
}
