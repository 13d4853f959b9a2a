package sorting

import (
	"testing"

	"github.com/abelbrown/tabula/internal/record"
)

func product(id int, price record.Value, brand string) record.Record {
	return record.Record{
		"id":    record.Number(float64(id)),
		"price": price,
		"brand": record.String(brand),
	}
}

func ids(records []record.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID()
	}
	return out
}

func sameOrder(t *testing.T, got []record.Record, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, g)
		}
	}
}

func TestApplyNumericAscending(t *testing.T) {
	in := []record.Record{
		product(1, record.Number(10), "b"),
		product(2, record.Number(2.5), "a"),
		product(3, record.Number(100), "c"),
		product(4, record.Number(-1), "d"),
	}
	got := Apply(in, Spec{Field: "price", Direction: Asc})
	sameOrder(t, got, "4", "2", "1", "3")

	for i := 1; i < len(got); i++ {
		a, _ := got[i-1].Get("price").Number()
		b, _ := got[i].Get("price").Number()
		if a > b {
			t.Errorf("ascending order broken at %d: %v > %v", i, a, b)
		}
	}
}

func TestApplyNumericDescending(t *testing.T) {
	in := []record.Record{
		product(1, record.Number(10), "b"),
		product(2, record.Number(2.5), "a"),
		product(3, record.Number(100), "c"),
	}
	got := Apply(in, Spec{Field: "price", Direction: Desc})
	sameOrder(t, got, "3", "1", "2")
}

func TestApplyStrings(t *testing.T) {
	in := []record.Record{
		product(1, record.Null(), "Samsung"),
		product(2, record.Null(), "Apple"),
		product(3, record.Null(), "Dell"),
	}
	sameOrder(t, Apply(in, Spec{Field: "brand", Direction: Asc}), "2", "3", "1")
}

func TestApplyIsStable(t *testing.T) {
	// Shared keys, distinct ids as secondary markers.
	in := []record.Record{
		product(1, record.Number(5), "x"),
		product(2, record.Number(1), "x"),
		product(3, record.Number(5), "x"),
		product(4, record.Number(1), "x"),
		product(5, record.Number(5), "x"),
	}
	sameOrder(t, Apply(in, Spec{Field: "price", Direction: Asc}), "2", "4", "1", "3", "5")
	sameOrder(t, Apply(in, Spec{Field: "price", Direction: Desc}), "1", "3", "5", "2", "4")
}

func TestApplyNullsLastBothDirections(t *testing.T) {
	in := []record.Record{
		product(1, record.Null(), "a"),
		product(2, record.Number(3), "b"),
		{"id": record.Number(3), "brand": record.String("c")}, // price missing
		product(4, record.Number(1), "d"),
	}
	sameOrder(t, Apply(in, Spec{Field: "price", Direction: Asc}), "4", "2", "1", "3")
	sameOrder(t, Apply(in, Spec{Field: "price", Direction: Desc}), "2", "4", "1", "3")
}

func TestApplyWithoutFieldKeepsOrder(t *testing.T) {
	in := []record.Record{
		product(3, record.Number(1), "a"),
		product(1, record.Number(2), "b"),
		product(2, record.Number(3), "c"),
	}
	got := Apply(in, None())
	sameOrder(t, got, "3", "1", "2")

	got[0] = product(9, record.Null(), "z")
	if in[0].ID() != "3" {
		t.Error("Apply should return a copy, not the input slice")
	}
}

func TestApplyDates(t *testing.T) {
	day := func(s string) record.Value {
		d, _ := record.ParseDate(s)
		return record.Date(d)
	}
	in := []record.Record{
		{"id": record.Number(1), "createdAt": day("2024-01-01")},
		{"id": record.Number(2), "createdAt": day("2023-01-01")},
	}
	sameOrder(t, Apply(in, Spec{Field: "createdAt", Direction: Asc}), "2", "1")
}

func TestToggle(t *testing.T) {
	s := None()
	s = s.Toggle("price")
	if s.Field != "price" || s.Direction != Asc {
		t.Errorf("first click should sort ascending, got %+v", s)
	}
	s = s.Toggle("price")
	if s.Direction != Desc {
		t.Errorf("second click should flip to descending, got %+v", s)
	}
	s = s.Toggle("price")
	if s.Direction != Asc {
		t.Errorf("third click should flip back, got %+v", s)
	}
	s = s.Toggle("price").Toggle("brand")
	if s.Field != "brand" || s.Direction != Asc {
		t.Errorf("new field should reset to ascending, got %+v", s)
	}
}
