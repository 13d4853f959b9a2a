// Package controller holds the state of the table browser and derives the
// visible page from it.
//
// # Architecture
//
//	┌────────┐  records  ┌─────────┐  filter  ┌──────┐  sort  ┌──────┐
//	│ fetch  │ ────────> │ augment │ ───────> │ memo │ ─────> │ page │ ──> View
//	└────────┘           └─────────┘          └──────┘        └──────┘
//
// The Controller never performs I/O. SelectCategory and Refresh return a
// FetchRequest the caller executes; the reply comes back through
// ApplyFetch carrying the request's token. Only the reply to the newest
// request is applied.
//
// # Concurrency
//
// Not safe for concurrent use. The UI drives it from the Bubble Tea
// update loop.
package controller

import (
	"fmt"
	"time"

	"github.com/abelbrown/tabula/internal/augment"
	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/filter"
	"github.com/abelbrown/tabula/internal/location"
	"github.com/abelbrown/tabula/internal/otel"
	"github.com/abelbrown/tabula/internal/page"
	"github.com/abelbrown/tabula/internal/record"
	"github.com/abelbrown/tabula/internal/sorting"
)

const comp = "ctrl"

// FetchRequest asks the caller to load a category. Token must be echoed
// back in the FetchResult.
type FetchRequest struct {
	Category category.Category
	Token    uint64
}

// FetchResult is the outcome of a FetchRequest.
type FetchResult struct {
	Token    uint64
	Category category.Category
	Records  []record.Record // raw, not yet augmented
	Err      error
}

// Options configures a Controller. Zero values pick defaults.
type Options struct {
	Category  category.Category
	Filter    filter.Spec
	PageSizes []int
	PageSize  int
	Now       func() time.Time
	Logger    *otel.Logger
}

// Controller owns the browser state.
type Controller struct {
	category category.Category
	records  []record.Record
	loading  bool
	errMsg   string

	filter filter.Spec
	sort   sorting.Spec
	page   page.Spec
	sizes  []int

	token  uint64
	now    func() time.Time
	logger *otel.Logger

	recordsVer uint64
	filterVer  uint64
	sortVer    uint64

	filtered stage
	sorted   stage
	bounds   boundsMemo
}

// View is a snapshot of everything the table needs to render.
type View struct {
	Category  category.Category
	Columns   []category.Column
	Rows      []record.Record
	Loaded    int // records held before filtering
	Total     int // records after filtering
	Page      page.Spec
	Pages     int
	From, To  int // 1-based row range of Rows; 0 when empty
	PageSizes []int
	Filter    filter.Spec
	Sort      sorting.Spec
	Loading   bool
	Err       string

	MinDate, MaxDate time.Time
	HasDates         bool
}

// New creates a Controller. No fetch is issued; call SelectCategory.
func New(opts Options) *Controller {
	cat := opts.Category
	if cat == "" {
		cat = category.Users
	}
	sizes := opts.PageSizes
	if len(sizes) == 0 {
		sizes = page.DefaultSizes
	}
	size := opts.PageSize
	if page.ValidateSize(size, sizes) != nil {
		size = sizes[0]
		if page.ValidateSize(page.DefaultSize, sizes) == nil {
			size = page.DefaultSize
		}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = otel.NewNullLogger()
	}

	spec := opts.Filter
	if spec.Status == "" {
		spec.Status = filter.StatusAll
	}

	return &Controller{
		category: cat,
		filter:   spec,
		sort:     sorting.None(),
		page:     page.Spec{Size: size},
		sizes:    append([]int(nil), sizes...),
		now:      now,
		logger:   logger,
	}
}

// Category returns the selected category.
func (c *Controller) Category() category.Category { return c.category }

// Filter returns the current filter spec.
func (c *Controller) Filter() filter.Spec { return c.filter }

// Loading reports whether a fetch is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// Token returns the token of the newest fetch request.
func (c *Controller) Token() uint64 { return c.token }

// SelectCategory switches category and returns the fetch to run. Records of
// the previous category are dropped so the column schema never mismatches
// the rows. The filter is kept.
func (c *Controller) SelectCategory(cat category.Category) FetchRequest {
	if cat != c.category {
		c.category = cat
		c.records = nil
		c.recordsVer++
	}
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindCategory, Comp: comp, Category: string(cat)})
	return c.request()
}

// Refresh re-issues the fetch for the current category. Existing rows stay
// visible until the reply lands.
func (c *Controller) Refresh() FetchRequest {
	return c.request()
}

func (c *Controller) request() FetchRequest {
	c.token++
	c.loading = true
	c.errMsg = ""
	return FetchRequest{Category: c.category, Token: c.token}
}

// ApplyFetch applies a fetch reply. Replies to anything but the newest
// request are discarded and false is returned.
func (c *Controller) ApplyFetch(res FetchResult) bool {
	if res.Token != c.token || res.Category != c.category {
		c.logger.Emit(otel.Event{
			Level:    otel.LevelDebug,
			Kind:     otel.KindFetchStale,
			Comp:     comp,
			Category: string(res.Category),
			Token:    res.Token,
			Msg:      fmt.Sprintf("latest token %d", c.token),
		})
		return false
	}

	c.loading = false
	c.recordsVer++

	if res.Err != nil {
		c.errMsg = res.Err.Error()
		if c.errMsg == "" {
			c.errMsg = "Failed to fetch data"
		}
		c.records = nil
		return true
	}

	c.errMsg = ""
	c.records = augment.Apply(res.Records, c.now())
	c.sort = sorting.None()
	c.sortVer++
	c.page.Index = 0
	return true
}

// SetFilter merges p into the filter spec and reports whether anything
// changed. The page index is left alone; a page past the end renders empty.
func (c *Controller) SetFilter(p filter.Patch) bool {
	next := c.filter.Merge(p)
	if next.Equal(c.filter) {
		return false
	}
	c.filter = next
	c.filterVer++
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFilter, Comp: comp, Location: c.Location()})
	return true
}

// ClearDates drops both date bounds.
func (c *Controller) ClearDates() bool {
	var zero time.Time
	return c.SetFilter(filter.Patch{From: &zero, To: &zero})
}

// ReplaceFilter swaps the whole filter spec, e.g. from a stored location.
func (c *Controller) ReplaceFilter(spec filter.Spec) bool {
	search, status, from, to := spec.Search, spec.Status, spec.From, spec.To
	if status == "" {
		status = filter.StatusAll
	}
	return c.SetFilter(filter.Patch{Search: &search, Status: &status, From: &from, To: &to})
}

// RequestSort sorts by field, flipping direction when field is already the
// sort key.
func (c *Controller) RequestSort(field string) {
	c.sort = c.sort.Toggle(field)
	c.sortVer++
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSort, Comp: comp, Field: field, Msg: string(c.sort.Direction)})
}

// ChangePage moves to page index i. Negative indexes clamp to 0; indexes
// past the end are kept and render an empty page.
func (c *Controller) ChangePage(i int) {
	if i < 0 {
		i = 0
	}
	c.page.Index = i
	c.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindPage, Comp: comp, Count: i})
}

// NextPage advances one page unless already on the last.
func (c *Controller) NextPage() {
	pages := page.Count(len(c.sortedRows()), c.page.Size)
	if c.page.Index+1 < pages {
		c.ChangePage(c.page.Index + 1)
	}
}

// PrevPage goes back one page, stopping at the first.
func (c *Controller) PrevPage() {
	if c.page.Index > 0 {
		c.ChangePage(c.page.Index - 1)
	}
}

// ChangePageSize sets rows per page and returns to the first page. Sizes
// outside the allowed set are rejected with page.ErrInvalidSize.
func (c *Controller) ChangePageSize(n int) error {
	if err := page.ValidateSize(n, c.sizes); err != nil {
		return err
	}
	c.page = page.Spec{Index: 0, Size: n}
	c.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindPageSize, Comp: comp, Count: n})
	return nil
}

// CyclePageSize steps to the next allowed size.
func (c *Controller) CyclePageSize() int {
	n := page.NextSize(c.page.Size, c.sizes)
	_ = c.ChangePageSize(n)
	return n
}

// Location returns the filter spec encoded as a query string.
func (c *Controller) Location() string {
	return location.Encode(c.filter)
}

// View derives the visible page. Filtered and sorted sets are reused until
// their inputs change.
func (c *Controller) View() View {
	sorted := c.sortedRows()
	res := page.Apply(sorted, c.page)

	lo, hi, ok := c.dateBounds()

	return View{
		Category:  c.category,
		Columns:   c.category.Columns(),
		Rows:      res.Rows,
		Loaded:    len(c.records),
		Total:     res.Total,
		Page:      c.page,
		Pages:     res.Pages,
		From:      res.From,
		To:        res.To,
		PageSizes: append([]int(nil), c.sizes...),
		Filter:    c.filter,
		Sort:      c.sort,
		Loading:   c.loading,
		Err:       c.errMsg,
		MinDate:   lo,
		MaxDate:   hi,
		HasDates:  ok,
	}
}

func (c *Controller) filteredRows() []record.Record {
	return c.filtered.get(c.recordsVer, c.filterVer, func() []record.Record {
		return c.timed("filter", func() []record.Record {
			return filter.Apply(c.records, c.filter)
		})
	})
}

func (c *Controller) sortedRows() []record.Record {
	in := c.filteredRows()
	return c.sorted.get(c.filtered.runs, c.sortVer, func() []record.Record {
		return c.timed("sort", func() []record.Record {
			return sorting.Apply(in, c.sort)
		})
	})
}

func (c *Controller) dateBounds() (lo, hi time.Time, ok bool) {
	if !c.bounds.valid || c.bounds.ver != c.recordsVer {
		c.bounds.min, c.bounds.max, c.bounds.ok = filter.DateBounds(c.records)
		c.bounds.ver = c.recordsVer
		c.bounds.valid = true
	}
	return c.bounds.min, c.bounds.max, c.bounds.ok
}

func (c *Controller) timed(name string, fn func() []record.Record) []record.Record {
	start := time.Now()
	out := fn()
	c.logger.Emit(otel.Event{
		Level: otel.LevelDebug,
		Kind:  otel.KindRecompute,
		Comp:  comp,
		Field: name,
		Count: len(out),
		Dur:   time.Since(start),
	})
	return out
}

// Recomputes reports how many times the filter and sort stages ran.
func (c *Controller) Recomputes() (filterRuns, sortRuns int) {
	return int(c.filtered.runs), int(c.sorted.runs)
}
