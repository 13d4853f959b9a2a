package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/tabula/internal/otel"
)

func TestDebugOverlayNilRing(t *testing.T) {
	if got := debugOverlay(nil, 80, 24); got != "" {
		t.Errorf("debugOverlay(nil) = %q, want empty", got)
	}
}

func TestDebugOverlayRendersStats(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	now := time.Now()
	for _, k := range []otel.EventKind{
		otel.KindFetchComplete, otel.KindFetchComplete, otel.KindFetchError, otel.KindFetchStale,
		otel.KindFilter, otel.KindSort, otel.KindPage, otel.KindPageSize,
	} {
		ring.Push(otel.Event{Kind: k, Time: now})
	}

	result := debugOverlay(ring, 100, 40)
	for _, want := range []string{"Session Stats", "2 complete, 1 errors, 1 stale", "1 filter, 1 sort, 2 page", "8 events"} {
		if !strings.Contains(result, want) {
			t.Errorf("overlay missing %q:\n%s", want, result)
		}
	}
}

func TestDebugOverlayRecentEvents(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	ring.Push(otel.Event{Kind: otel.KindFetchStart, Time: time.Now(), Category: "users", Token: 3})
	ring.Push(otel.Event{Kind: otel.KindFetchError, Time: time.Now(), Err: "timeout"})
	ring.Push(otel.Event{Kind: otel.KindFilter, Time: time.Now(), Location: "search=sam"})

	result := debugOverlay(ring, 100, 40)
	for _, want := range []string{"Recent Events", "users", "#3", "ERR:timeout", "?search=sam"} {
		if !strings.Contains(result, want) {
			t.Errorf("overlay missing %q:\n%s", want, result)
		}
	}
}

func TestDebugOverlayTruncation(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	for i := 0; i < 30; i++ {
		ring.Push(otel.Event{Kind: otel.KindKeyPress, Time: time.Now()})
	}

	result := debugOverlay(ring, 80, 10)
	if result == "" {
		t.Fatal("overlay should render with a small height")
	}
	if lines := strings.Count(result, "\n") + 1; lines > 10 {
		t.Errorf("overlay has %d lines for height 10", lines)
	}
}

func TestDebugToggle(t *testing.T) {
	ring := otel.NewRingBuffer(16)
	app := NewAppWithConfig(AppConfig{Obs: ObsConfig{Ring: ring}})
	app.ready = true
	app.width = 80
	app.height = 24

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	app = m.(App)
	if !app.debugVisible {
		t.Fatal("? should show the overlay")
	}
	if !strings.Contains(app.View(), "[DEBUG]") {
		t.Errorf("debug view missing marker:\n%s", app.View())
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if m.(App).debugVisible {
		t.Error("second ? should hide the overlay")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		dur  time.Duration
		want string
	}{
		{-5 * time.Second, "0ms"},
		{0, "0ms"},
		{999 * time.Millisecond, "999ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "2m"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.dur); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.dur, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"Samantha", 5, "Sama…"},
		{"ümlaut", 3, "üm…"},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
