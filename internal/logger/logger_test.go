package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pen.log")
	t.Setenv("PEN_LOG_FILE", path)

	if err := Init(true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("hello", "k", "v")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log = %q, want it to contain %q", data, "hello")
	}
}

func TestGetBeforeInit(t *testing.T) {
	Close()
	if Get() == nil {
		t.Fatalf("Get() = nil, want no-op logger")
	}
	// Helpers are safe without a logger.
	Warn("ignored")
}

func TestLogPathFallbacks(t *testing.T) {
	t.Setenv("PEN_LOG_FILE", "")
	t.Setenv("PEN_CONFIG_HOME", "/tmp/pen-home")
	got, err := getLogPath()
	if err != nil {
		t.Fatalf("getLogPath error: %v", err)
	}
	if got != "/tmp/pen-home/pen.log" {
		t.Fatalf("path = %q, want %q", got, "/tmp/pen-home/pen.log")
	}

	t.Setenv("PEN_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err = getLogPath()
	if err != nil {
		t.Fatalf("getLogPath error: %v", err)
	}
	if got != "/tmp/xdg/pen/pen.log" {
		t.Fatalf("path = %q, want %q", got, "/tmp/xdg/pen/pen.log")
	}
}
