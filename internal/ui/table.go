package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/controller"
	"github.com/abelbrown/tabula/internal/record"
	"github.com/abelbrown/tabula/internal/sorting"
)

// maxCellRunes caps cell text so one long field cannot push columns off
// screen.
const maxCellRunes = 28

// headerLabel renders a column title with its sort indicator.
func headerLabel(col category.Column, spec sorting.Spec) string {
	if spec.Field != col.Key {
		return col.Label
	}
	if spec.Direction == sorting.Desc {
		return col.Label + " ▼"
	}
	return col.Label + " ▲"
}

// cellText is the display form of a field.
func cellText(rec record.Record, key string) string {
	return truncateRunes(rec.Get(key).Text(), maxCellRunes)
}

func alignOf(a category.Align) lipgloss.Position {
	switch a {
	case category.AlignRight:
		return lipgloss.Right
	case category.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}

// renderTable draws the visible page. cursor is the highlighted column.
func renderTable(v controller.View, cursor, width int) string {
	headers := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		headers[i] = headerLabel(col, v.Sort)
	}

	rows := make([][]string, len(v.Rows))
	for r, rec := range v.Rows {
		cells := make([]string, len(v.Columns))
		for c, col := range v.Columns {
			cells[c] = cellText(rec, col.Key)
		}
		rows[r] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow && col == cursor:
				s = TableHeaderCursor
			case row == table.HeaderRow:
				s = TableHeader
			case row%2 == 1:
				s = TableCellZebra
			default:
				s = TableCell
			}
			if col < len(v.Columns) {
				s = s.Align(alignOf(v.Columns[col].Align))
			}
			return s
		})
	if width > 0 {
		t = t.Width(width)
	}

	out := t.String()
	if len(v.Rows) == 0 {
		out += "\n" + EmptyTable.Render(emptyMessage(v))
	}
	return out
}

func emptyMessage(v controller.View) string {
	switch {
	case v.Loading:
		return "Loading " + strings.ToLower(v.Category.Label()) + "..."
	case v.Err != "":
		return "No data."
	case v.Loaded == 0:
		return "No records."
	case v.Total == 0:
		return "No records match the current filters."
	default:
		return fmt.Sprintf("Page %d is past the end (%d pages).", v.Page.Index+1, v.Pages)
	}
}

// renderFooter is the pagination line.
func renderFooter(v controller.View, width int) string {
	rng := fmt.Sprintf("%d–%d of %d", v.From, v.To, v.Total)
	if v.From == 0 {
		rng = fmt.Sprintf("0 of %d", v.Total)
	}
	pages := v.Pages
	if pages == 0 {
		pages = 1
	}
	line := fmt.Sprintf("Rows per page: %d   %s   page %d/%d", v.Page.Size, rng, v.Page.Index+1, pages)
	return Footer.Width(width).Render(line)
}
