package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/config"
	"github.com/abelbrown/tabula/internal/fetch"
)

func userServer(t *testing.T, n int) *httptest.Server {
	t.Helper()
	names := []string{"Samantha", "Robert", "Emily"}
	var users []string
	for i := 0; i < n; i++ {
		users = append(users, fmt.Sprintf(`{"id":%d,"firstName":%q,"age":%d}`, i+1, names[i%len(names)], 20+i))
	}
	body := `{"users":[` + strings.Join(users, ",") + `],"total":` + fmt.Sprint(n) + `}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testSetup(t *testing.T, srv *httptest.Server) (*config.Config, *fetch.Fetcher) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Source.BaseURL = srv.URL
	cfg.Source.RequestsPerSecond = 0
	return cfg, fetch.NewFetcher(cfg.FetchOptions())
}

func TestDumpPipeline(t *testing.T) {
	srv := userServer(t, 12)
	cfg, fetcher := testSetup(t, srv)

	v, err := dump(context.Background(), cfg, fetcher, dumpOptions{
		category: "users",
		query:    "status=active",
		sort:     "age",
		desc:     true,
		page:     1,
		size:     5,
	})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if v.Category != category.Users || v.Total != 6 || v.Pages != 2 || len(v.Rows) != 5 {
		t.Fatalf("view: cat=%s total=%d pages=%d rows=%d", v.Category, v.Total, v.Pages, len(v.Rows))
	}
	// Active rows are the even indices, ages 20,22,...,30; descending.
	if got := v.Rows[0].Get("age").Text(); got != "30" {
		t.Errorf("first age = %s, want 30", got)
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, v); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Age v") || !strings.Contains(out, "Users: 1-5 of 6 (page 1/2, 5 per page)") {
		t.Errorf("table output:\n%s", out)
	}
}

func TestDumpRejectsBadInput(t *testing.T) {
	srv := userServer(t, 3)
	cfg, fetcher := testSetup(t, srv)

	if _, err := dump(context.Background(), cfg, fetcher, dumpOptions{category: "orders"}); err == nil {
		t.Error("unknown category should fail")
	}
	if _, err := dump(context.Background(), cfg, fetcher, dumpOptions{category: "users", size: 7}); err == nil {
		t.Error("page size outside the allowed set should fail")
	}
	if _, err := dump(context.Background(), cfg, fetcher, dumpOptions{category: "products"}); err == nil {
		t.Error("404 from the source should fail")
	}
}

func TestDumpPastLastPage(t *testing.T) {
	srv := userServer(t, 3)
	cfg, fetcher := testSetup(t, srv)

	v, err := dump(context.Background(), cfg, fetcher, dumpOptions{category: "users", page: 4})
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	if len(v.Rows) != 0 || v.Total != 3 {
		t.Errorf("rows=%d total=%d", len(v.Rows), v.Total)
	}

	var buf bytes.Buffer
	writeTable(&buf, v)
	if !strings.Contains(buf.String(), "Users: 0 of 3 (page 4, 10 per page)") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	srv := userServer(t, 4)
	cfg, fetcher := testSetup(t, srv)

	v, err := dump(context.Background(), cfg, fetcher, dumpOptions{category: "users", query: "search=rob", page: 1})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Category string           `json:"category"`
		Query    string           `json:"query"`
		Total    int              `json:"total"`
		Rows     []map[string]any `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got.Category != "users" || got.Query != "search=rob" || got.Total != 1 {
		t.Errorf("got %+v", got)
	}
	if len(got.Rows) != 1 || got.Rows[0]["firstName"] != "Robert" || got.Rows[0]["status"] != "inactive" {
		t.Errorf("rows = %v", got.Rows)
	}
}
