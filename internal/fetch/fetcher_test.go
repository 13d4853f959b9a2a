package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/otel"
)

const usersBody = `{
  "users": [
    {"id": 1, "firstName": "Emily", "lastName": "Johnson", "age": 28},
    {"id": 2, "firstName": "Michael", "lastName": "Williams", "age": 35},
    "not an object",
    {"id": 3, "firstName": "Sophia", "lastName": "Brown", "age": 42}
  ],
  "total": 208,
  "skip": 0,
  "limit": 30
}`

func TestFetchDecodesCategoryArray(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(usersBody))
	}))
	defer server.Close()

	f := NewFetcher(Options{BaseURL: server.URL})
	records, err := f.Fetch(context.Background(), category.Users)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if gotPath != "/users" {
		t.Errorf("expected path /users, got %s", gotPath)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records (non-object skipped), got %d", len(records))
	}
	if records[0].Get("firstName").Text() != "Emily" {
		t.Errorf("unexpected first record: %v", records[0])
	}
	if records[2].ID() != "3" {
		t.Errorf("expected order preserved, got id %s last", records[2].ID())
	}
}

func TestFetchSendsLimit(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	f := NewFetcher(Options{BaseURL: server.URL + "/", Limit: 100})
	if _, err := f.Fetch(context.Background(), category.Products); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if gotQuery != "limit=100" {
		t.Errorf("expected limit=100, got %q", gotQuery)
	}
}

func TestFetchNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(Options{BaseURL: server.URL})
	_, err := f.Fetch(context.Background(), category.Users)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("expected StatusError 404, got %v", err)
	}
	if err.Error() != "HTTP error! status: 404" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFetchInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer server.Close()

	f := NewFetcher(Options{BaseURL: server.URL})
	if _, err := f.Fetch(context.Background(), category.Users); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestFetchNetworkError(t *testing.T) {
	f := NewFetcher(Options{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	if _, err := f.Fetch(context.Background(), category.Users); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestFetchCancelledContext(t *testing.T) {
	f := NewFetcher(Options{BaseURL: "http://example.invalid"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Fetch(ctx, category.Users); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFetchEmitsEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(usersBody))
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger := otel.NewLogger(&buf)
	f := NewFetcher(Options{BaseURL: server.URL, Logger: logger})
	if _, err := f.Fetch(context.Background(), category.Users); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	logger.Close()

	out := buf.String()
	if !strings.Contains(out, `"kind":"fetch.start"`) || !strings.Contains(out, `"kind":"fetch.complete"`) {
		t.Errorf("expected start and complete events, got:\n%s", out)
	}
	if !strings.Contains(out, `"count":3`) {
		t.Errorf("expected record count in complete event, got:\n%s", out)
	}
}

func TestDecodeMalformedShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing key", `{"products": [{"id": 1}]}`},
		{"not an array", `{"users": {"id": 1}}`},
		{"null array", `{"users": null}`},
		{"top-level array", `[{"id": 1}]`},
		{"top-level string", `"users"`},
	}
	for _, tc := range tests {
		records, err := Decode(strings.NewReader(tc.body), "users")
		if err != nil {
			t.Errorf("%s: expected no error, got %v", tc.name, err)
			continue
		}
		if records == nil || len(records) != 0 {
			t.Errorf("%s: expected empty list, got %v", tc.name, records)
		}
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"users": [`), "users"); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestURL(t *testing.T) {
	f := NewFetcher(Options{})
	if got := f.URL(category.Products); got != "https://dummyjson.com/products" {
		t.Errorf("unexpected URL %s", got)
	}
}
