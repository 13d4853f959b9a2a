// Package record models fetched rows as maps from field name to a tagged
// value. Category schemas live elsewhere; a Record carries whatever fields
// the remote source returned plus the derived status and createdAt.
package record

import (
	"bytes"
	"cmp"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date form used for createdAt and date filters.
const DateLayout = "2006-01-02"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindDate
	KindString
	KindNested
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindString:
		return "string"
	case KindNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Value is a tagged scalar or nested field value. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string // string payload, or compact JSON for nested values
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a number.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Date wraps a calendar date. The time of day is discarded.
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: TruncateDate(t)}
}

// Nested wraps raw JSON of an object or array. The JSON is compacted so the
// text form is stable regardless of source formatting.
func Nested(raw []byte) Value {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return Value{kind: KindNested, s: string(raw)}
	}
	return Value{kind: KindNested, s: buf.String()}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Number returns the numeric payload.
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.n, true
}

// Date returns the calendar date held by v. Strings in DateLayout form are
// accepted as well, since raw source data may already carry dates as text.
func (v Value) Date() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.t, true
	case KindString:
		t, err := ParseDate(v.s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

// Text renders v for display and text search. Null renders empty, nested
// values render as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindDate:
		return v.t.Format(DateLayout)
	case KindString, KindNested:
		return v.s
	default:
		return ""
	}
}

// Equal reports whether a and b hold the same variant and payload.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	return Compare(a, b) == 0
}

// Compare orders two values. Values of different kinds are ordered by kind
// rank (null first, then bool, number, date, string, nested). Callers that
// need nulls last handle null before calling Compare.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		return cmp.Compare(a.n, b.n)
	case KindDate:
		return a.t.Compare(b.t)
	case KindString, KindNested:
		return strings.Compare(a.s, b.s)
	default:
		return 0
	}
}

// MarshalJSON encodes v as its natural JSON form. Dates encode as
// DateLayout strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindDate:
		return json.Marshal(v.t.Format(DateLayout))
	case KindString:
		return json.Marshal(v.s)
	case KindNested:
		return []byte(v.s), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any JSON value into the matching variant. Strings
// stay strings even when they look like dates; Date() parses them lazily.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}
	switch t := x.(type) {
	case nil:
		*v = Null()
	case bool:
		*v = Bool(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return err
		}
		*v = Number(n)
	case string:
		*v = String(t)
	default:
		*v = Nested(data)
	}
	return nil
}

// ParseDate parses a DateLayout string as a UTC calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// TruncateDate drops the time of day, keeping the UTC calendar date.
func TruncateDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
