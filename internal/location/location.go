// Package location encodes the filter spec as a query string. The query
// string is the view's address: read once at startup, rewritten on every
// filter change.
package location

import (
	"net/url"
	"strings"

	"github.com/abelbrown/tabula/internal/filter"
	"github.com/abelbrown/tabula/internal/record"
)

// Query parameter names.
const (
	ParamSearch = "search"
	ParamStatus = "status"
	ParamFrom   = "from"
	ParamTo     = "to"
)

// Encode renders spec as a query string without the leading '?'. Empty
// search, status "all", and unset dates are omitted. Keys are sorted.
func Encode(spec filter.Spec) string {
	v := url.Values{}
	if spec.Search != "" {
		v.Set(ParamSearch, spec.Search)
	}
	if spec.Status != "" && spec.Status != filter.StatusAll {
		v.Set(ParamStatus, string(spec.Status))
	}
	if !spec.From.IsZero() {
		v.Set(ParamFrom, spec.From.Format(record.DateLayout))
	}
	if !spec.To.IsZero() {
		v.Set(ParamTo, spec.To.Format(record.DateLayout))
	}
	return v.Encode()
}

// Decode parses a query string into a filter spec. A leading '?' is
// allowed. Unknown keys, malformed pairs, and invalid status or date values
// are ignored so a stale or hand-edited location never blocks startup.
func Decode(query string) filter.Spec {
	spec := filter.DefaultSpec()

	v, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if v == nil {
		return spec
	}

	spec.Search = v.Get(ParamSearch)
	if st, err := filter.ParseStatus(v.Get(ParamStatus)); err == nil {
		spec.Status = st
	}
	if d, err := record.ParseDate(v.Get(ParamFrom)); err == nil {
		spec.From = d
	}
	if d, err := record.ParseDate(v.Get(ParamTo)); err == nil {
		spec.To = d
	}
	return spec
}
