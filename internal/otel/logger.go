package otel

import (
	"bufio"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// queueSize bounds events waiting for the drain goroutine. A burst of key
// repeats is the largest producer.
const queueSize = 1024

// queued keeps the Event next to its encoding; the ring wants Dur, which
// the JSON form drops.
type queued struct {
	line []byte
	ev   Event
	disk bool
}

// Logger writes events as JSON lines from a background goroutine and feeds
// the debug overlay's ring. Emit never blocks; when the queue is full the
// event is counted in Dropped instead.
//
// Events below the disk level still reach the ring. tabula sets the level
// to info unless tracing is on, so per-keystroke debug events do not
// flood the events file.
type Logger struct {
	sessionID string
	out       *bufio.Writer
	queue     chan queued
	done      chan struct{}
	dropped   atomic.Uint64
	floor     atomic.Int32 // levelRank of the disk level

	ringMu sync.Mutex
	ring   *RingBuffer

	// closeMu orders Emit's send against Close's close(queue).
	closeMu sync.RWMutex
	closed  bool
}

// NewLogger starts a Logger writing to w. Every level goes to disk until
// SetDiskLevel says otherwise. Close flushes.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{
		sessionID: newSessionID(),
		out:       bufio.NewWriter(w),
		queue:     make(chan queued, queueSize),
		done:      make(chan struct{}),
	}
	go l.drain()
	return l
}

// NewNullLogger returns a Logger that keeps nothing on disk. The ring, if
// attached, still fills.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

func newSessionID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%x", b[:])
}

func levelRank(lv Level) int32 {
	switch lv {
	case LevelDebug:
		return 0
	case LevelWarn:
		return 2
	case LevelError:
		return 3
	default: // info, or unset
		return 1
	}
}

// SetDiskLevel drops events below lv from the file. The ring is unaffected.
func (l *Logger) SetDiskLevel(lv Level) {
	l.floor.Store(levelRank(lv))
}

func (l *Logger) drain() {
	defer close(l.done)

	unflushed := 0
	for q := range l.queue {
		if q.disk {
			if _, err := l.out.Write(q.line); err != nil {
				l.dropped.Add(1)
			} else {
				unflushed++
			}
		}
		l.pushRing(q.ev)

		// Flush once the burst is written, not per line.
		if unflushed > 0 && len(l.queue) == 0 {
			if err := l.out.Flush(); err != nil {
				l.dropped.Add(uint64(unflushed))
			}
			unflushed = 0
		}
	}
	if unflushed > 0 {
		if err := l.out.Flush(); err != nil {
			l.dropped.Add(uint64(unflushed))
		}
	}
}

func (l *Logger) pushRing(ev Event) {
	l.ringMu.Lock()
	ring := l.ring
	l.ringMu.Unlock()
	if ring != nil {
		ring.Push(ev)
	}
}

// Emit stamps the session id, and the time when unset, then queues e.
func (l *Logger) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.sessionID

	q := queued{ev: e, disk: levelRank(e.Level) >= l.floor.Load()}
	if q.disk {
		line, err := json.Marshal(e)
		if err != nil {
			l.dropped.Add(1)
			q.disk = false
		} else {
			q.line = append(line, '\n')
		}
	}

	l.closeMu.RLock()
	defer l.closeMu.RUnlock()
	if l.closed {
		l.dropped.Add(1)
		return
	}
	select {
	case l.queue <- q:
	default:
		l.dropped.Add(1)
	}
}

// Info emits an info event.
func (l *Logger) Info(kind EventKind, comp string, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn emits a warn event.
func (l *Logger) Warn(kind EventKind, comp string, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error event; a nil err leaves Err empty.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	e := Event{Level: LevelError, Kind: kind, Comp: comp}
	if err != nil {
		e.Err = err.Error()
	}
	l.Emit(e)
}

// SetRingBuffer attaches the debug overlay's ring.
func (l *Logger) SetRingBuffer(ring *RingBuffer) {
	l.ringMu.Lock()
	l.ring = ring
	l.ringMu.Unlock()
}

// SessionID returns the random id stamped on every event of this run.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// Dropped counts events lost to a full queue, an encode or write error,
// or an Emit after Close.
func (l *Logger) Dropped() uint64 {
	return l.dropped.Load()
}

// Close drains the queue, flushes and reports drops on stderr. Safe to
// call more than once.
func (l *Logger) Close() {
	l.closeMu.Lock()
	if l.closed {
		l.closeMu.Unlock()
		return
	}
	l.closed = true
	close(l.queue)
	l.closeMu.Unlock()

	<-l.done
	if d := l.dropped.Load(); d > 0 {
		fmt.Fprintf(os.Stderr, "tabula: %d events dropped during session %s\n", d, l.sessionID)
	}
}
