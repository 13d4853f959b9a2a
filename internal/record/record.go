package record

import (
	"encoding/json"
	"fmt"
)

// Field names every augmented record carries.
const (
	FieldID        = "id"
	FieldStatus    = "status"
	FieldCreatedAt = "createdAt"
)

// Record is one row: field name to value. Records are treated as immutable
// once fetched; transforms return copies.
type Record map[string]Value

// Get returns the named field, or null when absent.
func (r Record) Get(field string) Value {
	v, ok := r[field]
	if !ok {
		return Null()
	}
	return v
}

// ID returns the text form of the id field.
func (r Record) ID() string {
	return r.Get(FieldID).Text()
}

// Clone returns a shallow copy. Values are immutable so a shallow copy is
// independent of the original.
func (r Record) Clone() Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Decode parses a JSON object into a Record.
func Decode(data []byte) (Record, error) {
	var fields map[string]Value
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decode record: not an object")
	}
	return Record(fields), nil
}
