package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abelbrown/tabula/internal/store"
)

func TestPrintLocation(t *testing.T) {
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	var empty bytes.Buffer
	if err := printLocation(&empty, st, 5); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(empty.String(), "No location stored yet.") {
		t.Errorf("output = %q", empty.String())
	}

	st.ReplaceLocation(store.MainView, "search=sam")
	st.ReplaceLocation(store.MainView, "from=2023-01-01&search=sam&status=active")

	var buf bytes.Buffer
	if err := printLocation(&buf, st, 5); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Current:  ?from=2023-01-01&search=sam&status=active",
		`search: "sam"`,
		"status: active",
		"from:   2023-01-01",
		"to:     -",
		"History (2):",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}
