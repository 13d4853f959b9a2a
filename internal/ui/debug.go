package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/tabula/internal/otel"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (2) and vertical padding (2).
const debugPanelChrome = 4

// debugOverlay renders the event stats and the most recent events.
// Returns empty string if ring is nil.
func debugOverlay(ring *otel.RingBuffer, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	recent := ring.Last(20)

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Session Stats"))
	lines = append(lines, fmt.Sprintf("  Fetches:    %d complete, %d errors, %d stale",
		stats[otel.KindFetchComplete], stats[otel.KindFetchError], stats[otel.KindFetchStale]))
	lines = append(lines, fmt.Sprintf("  View:       %d filter, %d sort, %d page",
		stats[otel.KindFilter], stats[otel.KindSort], stats[otel.KindPage]+stats[otel.KindPageSize]))
	lines = append(lines, fmt.Sprintf("  Recomputes: %d", stats[otel.KindRecompute]))
	lines = append(lines, fmt.Sprintf("  Buffer:     %d events", ring.Len()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range recent {
		line := fmt.Sprintf("  %6s  %-18s", formatAge(time.Since(e.Time)), string(e.Kind))
		if e.Category != "" {
			line += "  " + e.Category
		}
		if e.Token != 0 {
			line += fmt.Sprintf("  #%d", e.Token)
		}
		if e.Location != "" {
			line += "  ?" + truncateRunes(e.Location, 30)
		}
		if e.Msg != "" {
			line += "  " + truncateRunes(e.Msg, 40)
		}
		if e.Err != "" {
			line += "  ERR:" + truncateRunes(e.Err, 30)
		}
		lines = append(lines, line)
	}

	maxHeight := height - debugPanelChrome
	if maxHeight < 1 {
		maxHeight = 1
	}
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := 76
	if panelWidth > width-4 {
		panelWidth = width - 4
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// formatAge formats a duration as a compact human string. Negative
// durations from clock skew clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("?") + StatusBarText.Render(":close")
	return StatusBar.Width(width).Render("  [DEBUG]  " + keys)
}
