// Package ui provides the Bubble Tea TUI for tabula.
package ui

import "github.com/abelbrown/tabula/internal/controller"

// FetchDone carries the reply to a controller.FetchRequest.
type FetchDone struct {
	Result controller.FetchResult
}

// LocationSaved is sent after the filter location was written back.
// Superseded is set when a newer location was already stored and this
// one was skipped.
type LocationSaved struct {
	Query      string
	Superseded bool
	Err        error
}
