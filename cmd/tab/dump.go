package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/config"
	"github.com/abelbrown/tabula/internal/controller"
	"github.com/abelbrown/tabula/internal/fetch"
	"github.com/abelbrown/tabula/internal/location"
	"github.com/abelbrown/tabula/internal/sorting"
	"github.com/abelbrown/tabula/internal/store"
)

type dumpOptions struct {
	category string
	query    string
	sort     string
	desc     bool
	page     int // 1-based
	size     int
	json     bool
	stored   bool // fall back to the stored location when query is empty
}

func runDump(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	opts := dumpOptions{}
	fs.StringVar(&opts.category, "category", "", "Category: users or products (default from config)")
	fs.StringVar(&opts.query, "q", "", "Filter location, e.g. 'search=sam&status=active'")
	fs.StringVar(&opts.sort, "sort", "", "Sort by column key")
	fs.BoolVar(&opts.desc, "desc", false, "Sort descending")
	fs.IntVar(&opts.page, "page", 1, "Page number, 1-based")
	fs.IntVar(&opts.size, "size", 0, "Rows per page (default from config)")
	fs.BoolVar(&opts.json, "json", false, "Print the page as JSON")
	fs.BoolVar(&opts.stored, "stored", true, "Use the stored location when -q is empty")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if opts.query == "" && opts.stored {
		if q, ok := storedLocation(); ok {
			opts.query = q
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fetcher := fetch.NewFetcher(cfg.FetchOptions())
	v, err := dump(ctx, cfg, fetcher, opts)
	if err != nil {
		return err
	}
	if opts.json {
		return writeJSON(out, v)
	}
	return writeTable(out, v)
}

// storedLocation reads the TUI's last location. Failures just mean there
// is nothing to reuse.
func storedLocation() (string, bool) {
	st, err := openDB()
	if err != nil {
		return "", false
	}
	defer st.Close()
	q, ok, err := st.Location(store.MainView)
	if err != nil {
		return "", false
	}
	return q, ok
}

// dump runs one fetch through the controller and returns the requested page.
func dump(ctx context.Context, cfg *config.Config, fetcher *fetch.Fetcher, opts dumpOptions) (controller.View, error) {
	cat := cfg.Category()
	if opts.category != "" {
		c, err := category.Parse(opts.category)
		if err != nil {
			return controller.View{}, err
		}
		cat = c
	}

	ctrl := controller.New(controller.Options{
		Category:  cat,
		Filter:    location.Decode(opts.query),
		PageSizes: cfg.UI.PageSizes,
		PageSize:  cfg.UI.DefaultPageSize,
	})

	req := ctrl.SelectCategory(cat)
	recs, err := fetcher.Fetch(ctx, req.Category)
	ctrl.ApplyFetch(controller.FetchResult{Token: req.Token, Category: req.Category, Records: recs, Err: err})
	if err != nil {
		return controller.View{}, err
	}

	if opts.sort != "" {
		ctrl.RequestSort(opts.sort)
		if opts.desc {
			ctrl.RequestSort(opts.sort)
		}
	}
	if opts.size > 0 {
		if err := ctrl.ChangePageSize(opts.size); err != nil {
			return controller.View{}, err
		}
	}
	if opts.page > 1 {
		ctrl.ChangePage(opts.page - 1)
	}
	return ctrl.View(), nil
}

func writeTable(w io.Writer, v controller.View) error {
	headers := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		headers[i] = col.Label
		if v.Sort.Field == col.Key {
			if v.Sort.Direction == sorting.Desc {
				headers[i] += " v"
			} else {
				headers[i] += " ^"
			}
		}
	}
	rows := make([][]string, len(v.Rows))
	for r, rec := range v.Rows {
		cells := make([]string, len(v.Columns))
		for c, col := range v.Columns {
			cells[c] = truncate(rec.Get(col.Key).Text(), 40)
		}
		rows[r] = cells
	}

	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if col < len(v.Columns) && v.Columns[col].Align == category.AlignRight {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	fmt.Fprintln(w, t.String())
	from := v.From
	if from == 0 {
		fmt.Fprintf(w, "\n%s: 0 of %d (page %d, %d per page)\n", v.Category.Label(), v.Total, v.Page.Index+1, v.Page.Size)
		return nil
	}
	fmt.Fprintf(w, "\n%s: %d-%d of %d (page %d/%d, %d per page)\n",
		v.Category.Label(), from, v.To, v.Total, v.Page.Index+1, v.Pages, v.Page.Size)
	return nil
}

type dumpJSON struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	Pages    int    `json:"pages"`
	Size     int    `json:"size"`
	Sort     string `json:"sort,omitempty"`
	Desc     bool   `json:"desc,omitempty"`
	Rows     any    `json:"rows"`
	Fetched  string `json:"fetched_at"`
}

func writeJSON(w io.Writer, v controller.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dumpJSON{
		Category: string(v.Category),
		Query:    location.Encode(v.Filter),
		Total:    v.Total,
		Page:     v.Page.Index + 1,
		Pages:    v.Pages,
		Size:     v.Page.Size,
		Sort:     v.Sort.Field,
		Desc:     v.Sort.Direction == sorting.Desc,
		Rows:     v.Rows,
		Fetched:  time.Now().UTC().Format(time.RFC3339),
	})
}
