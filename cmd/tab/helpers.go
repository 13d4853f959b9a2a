package main

import (
	"fmt"
	"os"

	"github.com/abelbrown/tabula/internal/config"
	"github.com/abelbrown/tabula/internal/store"
)

// dataDir returns the tabula data directory, creating it if needed.
func dataDir() (string, error) {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// openDB opens the location store.
func openDB() (*store.Store, error) {
	if _, err := dataDir(); err != nil {
		return nil, err
	}
	st, err := store.Open(config.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
