package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abelbrown/tabula/internal/category"
	"github.com/abelbrown/tabula/internal/fetch"
	"github.com/abelbrown/tabula/internal/page"
)

// Config is the persistent application configuration
type Config struct {
	Source SourceConfig `json:"source"`
	UI     UIConfig     `json:"ui"`

	// Trace turns on per-message trace events (same as TABULA_TRACE).
	Trace bool `json:"trace"`
}

// SourceConfig describes the remote record source.
type SourceConfig struct {
	BaseURL           string  `json:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	Limit             int     `json:"limit"` // 0 = server default
	RequestsPerSecond float64 `json:"requests_per_second"`
}

// UIConfig holds table preferences
type UIConfig struct {
	DefaultCategory string `json:"default_category"`
	PageSizes       []int  `json:"page_sizes"`
	DefaultPageSize int    `json:"default_page_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			BaseURL:           fetch.DefaultBaseURL,
			TimeoutSeconds:    30,
			RequestsPerSecond: 2,
		},
		UI: UIConfig{
			DefaultCategory: string(category.Users),
			PageSizes:       append([]int(nil), page.DefaultSizes...),
			DefaultPageSize: page.DefaultSize,
		},
	}
}

// Dir returns the data directory: $TABULA_HOME, else ~/.tabula.
func Dir() string {
	if d := os.Getenv("TABULA_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tabula")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// DBPath is the SQLite location store.
func DBPath() string {
	return filepath.Join(Dir(), "tabula.db")
}

// EventsPath is the JSONL event log.
func EventsPath() string {
	return filepath.Join(Dir(), "tabula.events.jsonl")
}

// Load reads .env, the config file and environment overrides, in that order.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// LoadFile reads config from path. A missing file yields defaults; an
// unreadable one falls back to defaults too.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveFile(ConfigPath())
}

// SaveFile writes config to path, creating its directory.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from TABULA_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TABULA_BASE_URL"); v != "" {
		c.Source.BaseURL = v
	}
	if v := os.Getenv("TABULA_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid TABULA_TIMEOUT: %w", err)
		}
		c.Source.TimeoutSeconds = d
	}
	if v := os.Getenv("TABULA_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TABULA_LIMIT: %w", err)
		}
		c.Source.Limit = n
	}
	if v := os.Getenv("TABULA_CATEGORY"); v != "" {
		if _, err := category.Parse(v); err != nil {
			return fmt.Errorf("invalid TABULA_CATEGORY: %w", err)
		}
		c.UI.DefaultCategory = v
	}
	if os.Getenv("TABULA_TRACE") != "" {
		c.Trace = true
	}
	return nil
}

// parseTimeout accepts plain seconds ("15") or a Go duration ("1m30s").
func parseTimeout(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	return int(d / time.Second), nil
}

// Normalize repairs values a hand-edited file may get wrong: page sizes
// are sorted and positive, the default size is one of them, and the
// category is known.
func (c *Config) Normalize() {
	sizes := make([]int, 0, len(c.UI.PageSizes))
	seen := make(map[int]bool)
	for _, n := range c.UI.PageSizes {
		if n > 0 && !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		sizes = append(sizes, page.DefaultSizes...)
	}
	sort.Ints(sizes)
	c.UI.PageSizes = sizes

	if page.ValidateSize(c.UI.DefaultPageSize, sizes) != nil {
		c.UI.DefaultPageSize = sizes[0]
		if page.ValidateSize(page.DefaultSize, sizes) == nil {
			c.UI.DefaultPageSize = page.DefaultSize
		}
	}

	if _, err := category.Parse(c.UI.DefaultCategory); err != nil {
		c.UI.DefaultCategory = string(category.Users)
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = 30
	}
	if c.Source.Limit < 0 {
		c.Source.Limit = 0
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// Category returns the parsed default category.
func (c *Config) Category() category.Category {
	cat, err := category.Parse(c.UI.DefaultCategory)
	if err != nil {
		return category.Users
	}
	return cat
}

// FetchOptions builds fetcher options from the source settings.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		BaseURL:           c.Source.BaseURL,
		Timeout:           c.Timeout(),
		Limit:             c.Source.Limit,
		RequestsPerSecond: c.Source.RequestsPerSecond,
	}
}
