// Package fetch retrieves category records from the remote REST source.
//
// The source answers GET {base}/{category} with a JSON object holding the
// record array under the category name. Anything else that still parses as
// JSON yields an empty list; transport failures, non-2xx statuses, and
// unparseable bodies are errors.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/otel"
	"github.com/abelbrown/tabula/internal/record"
)

// DefaultBaseURL is the public demo API the browser targets by default.
const DefaultBaseURL = "https://dummyjson.com"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 16 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// Options configures a Fetcher. Zero values pick defaults.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	Limit             int     // appended as ?limit=N when > 0
	RequestsPerSecond float64 // <= 0 disables limiting
	Logger            *otel.Logger
}

// Fetcher retrieves records for a category.
type Fetcher struct {
	baseURL string
	limit   int
	client  *http.Client
	limiter *rate.Limiter
	logger  *otel.Logger
}

// NewFetcher creates a Fetcher from opts.
func NewFetcher(opts Options) *Fetcher {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	logger := opts.Logger
	if logger == nil {
		logger = otel.NewNullLogger()
	}

	return &Fetcher{
		baseURL: base,
		limit:   opts.Limit,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// URL returns the resource URL for a category.
func (f *Fetcher) URL(c category.Category) string {
	u := f.baseURL + "/" + url.PathEscape(string(c))
	if f.limit > 0 {
		u += "?limit=" + strconv.Itoa(f.limit)
	}
	return u
}

// Fetch performs a single GET for c and decodes the record array. There is
// no retry; callers surface the error.
func (f *Fetcher) Fetch(ctx context.Context, c category.Category) ([]record.Record, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	f.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchStart, Comp: "fetch", Category: string(c)})

	records, err := f.get(ctx, c)
	if err != nil {
		f.logger.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindFetchError, Comp: "fetch", Category: string(c), Dur: time.Since(start), Err: err.Error()})
		return nil, err
	}

	f.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchComplete, Comp: "fetch", Category: string(c), Dur: time.Since(start), Count: len(records)})
	return records, nil
}

func (f *Fetcher) get(ctx context.Context, c category.Category) ([]record.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(c), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tabula/0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return Decode(io.LimitReader(resp.Body, maxBodyBytes), string(c))
}

// Decode reads a response body and returns the records under key.
// Invalid JSON is an error. A body that is not an object, lacks key, or
// holds a non-array under key yields an empty list. Array elements that
// are not objects are skipped.
func Decode(body io.Reader, key string) ([]record.Record, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("failed to parse response: invalid JSON")
	}

	records := []record.Record{}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return records, nil
	}
	raw, ok := obj[key]
	if !ok {
		return records, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return records, nil
	}

	for _, elem := range elems {
		rec, err := record.Decode(elem)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
