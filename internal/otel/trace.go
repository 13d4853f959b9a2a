package otel

import (
	"os"
	"sync/atomic"
)

// traceEnabled is read on every UI message; atomic so tests can flip it.
var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv("TABULA_TRACE") != "")
}

// TraceEnabled reports whether TABULA_TRACE is set.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

// SetTraceEnabled overrides the trace flag. Config calls it after loading
// so the config file can turn tracing on.
func SetTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
