package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// captureLogger points the global logger at a buffer for the test's duration.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := Logger
	Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { Logger = previous })
	return &buf
}

func TestWithSymbol(t *testing.T) {
	buf := captureLogger(t)

	WithSymbol("AAPL").Warn("fundamentals unavailable")

	out := buf.String()
	if !strings.Contains(out, "symbol=AAPL") {
		t.Errorf("expected symbol field in output, got %q", out)
	}
	if !strings.Contains(out, "fundamentals unavailable") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestWithAgent(t *testing.T) {
	buf := captureLogger(t)

	WithAgent("Risk Officer").Debug("agent scored", "score", 0.5)

	out := buf.String()
	if !strings.Contains(out, `agent="Risk Officer"`) {
		t.Errorf("expected agent field in output, got %q", out)
	}
	if !strings.Contains(out, "score=0.5") {
		t.Errorf("expected score attribute in output, got %q", out)
	}
}

func TestLoggerLevels(t *testing.T) {
	buf := captureLogger(t)

	Debug("debug line")
	Info("info line")
	Warn("warn line")
	Error("error line")

	out := buf.String()
	for _, want := range []string{"debug line", "info line", "warn line", "error line"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}
