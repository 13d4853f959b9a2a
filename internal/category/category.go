// Package category defines the selectable data domains and the static
// column schema each one renders with.
package category

import (
	"errors"
	"fmt"
)

// ErrUnknown is returned when a name does not match any category.
var ErrUnknown = errors.New("unknown category")

// Category is a selectable data domain. Its value doubles as the remote
// resource path and the JSON key holding the record array.
type Category string

const (
	Users    Category = "users"
	Products Category = "products"
)

// All lists categories in toggle order.
var All = []Category{Users, Products}

// Align is the text alignment of a column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column is one entry of a column schema.
type Column struct {
	Key   string
	Label string
	Align Align
}

var userColumns = []Column{
	{Key: "id", Label: "ID"},
	{Key: "firstName", Label: "First Name"},
	{Key: "lastName", Label: "Last Name"},
	{Key: "age", Label: "Age", Align: AlignRight},
	{Key: "gender", Label: "Gender"},
	{Key: "phone", Label: "Phone"},
	{Key: "role", Label: "Role"},
	{Key: "status", Label: "Status"},
	{Key: "createdAt", Label: "Created At"},
}

var productColumns = []Column{
	{Key: "id", Label: "ID"},
	{Key: "title", Label: "Title"},
	{Key: "category", Label: "Category"},
	{Key: "brand", Label: "Brand"},
	{Key: "stock", Label: "Stock", Align: AlignRight},
	{Key: "price", Label: "Price", Align: AlignRight},
	{Key: "status", Label: "Status"},
	{Key: "createdAt", Label: "Created At"},
}

// Parse maps a name to a Category.
func Parse(name string) (Category, error) {
	for _, c := range All {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Label is the display name shown on the category toggle.
func (c Category) Label() string {
	switch c {
	case Users:
		return "Users"
	case Products:
		return "Products"
	default:
		return string(c)
	}
}

// Columns returns a copy of the category's column schema.
func (c Category) Columns() []Column {
	var src []Column
	switch c {
	case Users:
		src = userColumns
	case Products:
		src = productColumns
	}
	out := make([]Column, len(src))
	copy(out, src)
	return out
}

// Next returns the category after c in toggle order, wrapping around.
func (c Category) Next() Category {
	for i, cat := range All {
		if cat == c {
			return All[(i+1)%len(All)]
		}
	}
	return All[0]
}
