package ui

import (
	"strings"
	"testing"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/controller"
	"github.com/abelbrown/tabula/internal/page"
	"github.com/abelbrown/tabula/internal/record"
	"github.com/abelbrown/tabula/internal/sorting"
)

func TestHeaderLabel(t *testing.T) {
	col := category.Column{Key: "age", Label: "Age"}
	tests := []struct {
		spec sorting.Spec
		want string
	}{
		{sorting.None(), "Age"},
		{sorting.Spec{Field: "id", Direction: sorting.Asc}, "Age"},
		{sorting.Spec{Field: "age", Direction: sorting.Asc}, "Age ▲"},
		{sorting.Spec{Field: "age", Direction: sorting.Desc}, "Age ▼"},
	}
	for _, tt := range tests {
		if got := headerLabel(col, tt.spec); got != tt.want {
			t.Errorf("headerLabel(%+v) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestCellText(t *testing.T) {
	rec := record.Record{
		"price": record.Number(9.99),
		"stock": record.Number(12),
		"meta":  record.Nested([]byte(`{"a": 1}`)),
		"long":  record.String(strings.Repeat("x", 40)),
	}
	tests := []struct {
		key, want string
	}{
		{"price", "9.99"},
		{"stock", "12"},
		{"meta", `{"a":1}`},
		{"missing", ""},
		{"long", strings.Repeat("x", maxCellRunes-1) + "…"},
	}
	for _, tt := range tests {
		if got := cellText(rec, tt.key); got != tt.want {
			t.Errorf("cellText(%s) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEmptyMessage(t *testing.T) {
	tests := []struct {
		name string
		v    controller.View
		want string
	}{
		{"loading", controller.View{Category: category.Products, Loading: true}, "Loading products..."},
		{"error", controller.View{Err: "boom"}, "No data."},
		{"nothing loaded", controller.View{}, "No records."},
		{"filtered out", controller.View{Loaded: 4}, "No records match the current filters."},
		{"past end", controller.View{Loaded: 4, Total: 4, Pages: 1, Page: page.Spec{Index: 3, Size: 10}}, "Page 4 is past the end (1 pages)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := emptyMessage(tt.v); got != tt.want {
				t.Errorf("emptyMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderFooter(t *testing.T) {
	v := controller.View{Total: 25, Pages: 3, From: 11, To: 20, Page: page.Spec{Index: 1, Size: 10}}
	got := renderFooter(v, 0)
	if !strings.Contains(got, "Rows per page: 10   11–20 of 25   page 2/3") {
		t.Errorf("footer = %q", got)
	}

	empty := renderFooter(controller.View{Page: page.Spec{Size: 5}}, 0)
	if !strings.Contains(empty, "0 of 0   page 1/1") {
		t.Errorf("empty footer = %q", empty)
	}
}

func TestRenderTableRightAligns(t *testing.T) {
	v := controller.View{
		Category: category.Products,
		Columns:  category.Products.Columns(),
		Rows: []record.Record{
			{"id": record.Number(1), "title": record.String("Mascara"), "stock": record.Number(5), "price": record.Number(9.99)},
		},
	}
	out := renderTable(v, 0, 0)
	if !strings.Contains(out, "Mascara") || !strings.Contains(out, "Stock") {
		t.Errorf("table missing content:\n%s", out)
	}
	if strings.Contains(out, "No records") {
		t.Error("non-empty table should not show the empty message")
	}
}
