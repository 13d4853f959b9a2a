package store

import (
	"sync"
	"sync/atomic"
)

// LocationWriter orders location writes for one view. Callers Reserve a
// sequence number when a change happens and Write it later from any
// goroutine; a write older than one already applied is dropped, so the
// stored query always ends at the newest reserved change.
type LocationWriter struct {
	st   *Store
	name string
	next atomic.Uint64

	mu      sync.Mutex
	applied uint64
}

// Writer returns a LocationWriter for the named view.
func (s *Store) Writer(name string) *LocationWriter {
	return &LocationWriter{st: s, name: name}
}

// Reserve hands out the next sequence number.
func (w *LocationWriter) Reserve() uint64 {
	return w.next.Add(1)
}

// Write stores query under seq. written is false when a newer sequence
// has already been written.
func (w *LocationWriter) Write(seq uint64, query string) (written bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq <= w.applied {
		return false, nil
	}
	// Claimed before the write: a failed newer write must not let an
	// older query land afterwards.
	w.applied = seq
	if err := w.st.ReplaceLocation(w.name, query); err != nil {
		return false, err
	}
	return true, nil
}
