package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestHelpersNilSafe(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	Info("x")
	Debug("x")
	Warn("x")
	Error("x")
	if WithPrefix("p") != nil {
		t.Error("WithPrefix should be nil before init")
	}
}

func TestInitWriterLevels(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	var buf bytes.Buffer
	InitWriter(&buf, log.InfoLevel)
	Debug("hidden")
	Warn("fetch failed", "category", "users")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "fetch failed") || !strings.Contains(out, "category=users") {
		t.Errorf("missing warn line: %q", out)
	}
}

func TestInitCreatesDailyFile(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	dir := t.TempDir()
	if err := Init(dir, "test"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName(time.Now())))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "tabula started") {
		t.Errorf("log file missing startup line: %q", data)
	}
}

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC))
	if got != "tabula-2024-03-09.log" {
		t.Errorf("FileName = %q", got)
	}
}
