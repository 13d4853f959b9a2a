// Package page slices sorted records into fixed-size pages.
package page

import (
	"errors"
	"fmt"

	"github.com/abelbrown/tabula/internal/record"
)

// DefaultSize is the page size used when none is configured.
const DefaultSize = 10

// DefaultSizes is the selectable page size set.
var DefaultSizes = []int{5, 10, 20, 50}

// ErrInvalidSize is returned for page sizes outside the allowed set.
var ErrInvalidSize = errors.New("invalid page size")

// Spec is the page position.
type Spec struct {
	Index int // zero-based
	Size  int
}

// Result is one page of records plus the counts the footer needs.
type Result struct {
	Rows  []record.Record
	Total int // records across all pages
	Pages int // ceil(Total/Size)
	From  int // 1-based position of the first row, 0 when empty
	To    int // 1-based position of the last row, 0 when empty
}

// Apply returns rows [Index*Size, Index*Size+Size) clipped to the input.
// An index past the end yields an empty page, never an error.
func Apply(records []record.Record, spec Spec) Result {
	size := spec.Size
	if size <= 0 {
		size = DefaultSize
	}
	total := len(records)
	res := Result{
		Rows:  []record.Record{},
		Total: total,
		Pages: Count(total, size),
	}

	if spec.Index < 0 || spec.Index >= res.Pages {
		return res
	}
	start := spec.Index * size
	end := start + size
	if end > total {
		end = total
	}

	res.Rows = records[start:end:end]
	res.From = start + 1
	res.To = end
	return res
}

// Count returns the number of pages needed for total rows.
func Count(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ValidateSize checks n against the allowed sizes.
func ValidateSize(n int, allowed []int) error {
	for _, s := range allowed {
		if s == n {
			return nil
		}
	}
	return fmt.Errorf("%w: %d (allowed %v)", ErrInvalidSize, n, allowed)
}

// NextSize returns the allowed size after n, wrapping around. Unknown
// sizes restart at the first allowed size.
func NextSize(n int, allowed []int) int {
	if len(allowed) == 0 {
		return DefaultSize
	}
	for i, s := range allowed {
		if s == n {
			return allowed[(i+1)%len(allowed)]
		}
	}
	return allowed[0]
}
