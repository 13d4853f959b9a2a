package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/abelbrown/tabula/internal/location"
	"github.com/abelbrown/tabula/internal/record"
	"github.com/abelbrown/tabula/internal/store"
)

func runLocation(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("location", flag.ContinueOnError)
	history := fs.Int("history", 10, "Number of history entries to show (0 = none)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openDB()
	if err != nil {
		return err
	}
	defer st.Close()

	return printLocation(out, st, *history)
}

func printLocation(out io.Writer, st *store.Store, history int) error {
	q, ok, err := st.Location(store.MainView)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "No location stored yet.")
	} else {
		fmt.Fprintf(out, "Current:  ?%s\n", q)
		spec := location.Decode(q)
		fmt.Fprintf(out, "  search: %q\n", spec.Search)
		fmt.Fprintf(out, "  status: %s\n", spec.Status)
		fmt.Fprintf(out, "  from:   %s\n", dateOrDash(spec.From.IsZero(), spec.From.Format(record.DateLayout)))
		fmt.Fprintf(out, "  to:     %s\n", dateOrDash(spec.To.IsZero(), spec.To.Format(record.DateLayout)))
	}

	if history <= 0 {
		return nil
	}
	entries, err := st.History(history)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nHistory (%d):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(out, "  %s  ?%s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Query)
	}
	return nil
}

func dateOrDash(zero bool, s string) string {
	if zero {
		return "-"
	}
	return s
}
