package debug

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// capture redirects the logger into a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		SetOutput(nopWriter{})
		SetLevel(zerolog.InfoLevel)
	})
	return &buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestDropMessage(t *testing.T) {
	buf := capture(t)
	DropMessage("INIT", "loading config")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"tag":"INIT"`, `"message":"loading config"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %s", out, want)
		}
	}
}

func TestDropError(t *testing.T) {
	buf := capture(t)
	DropError("RING", errors.New("buffer full"))
	DropError("GC", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"error":"buffer full"`) || !strings.Contains(lines[0], `"level":"warn"`) {
		t.Fatalf("unexpected error line %q", lines[0])
	}
	if strings.Contains(lines[1], `"error"`) || !strings.Contains(lines[1], `"tag":"GC"`) {
		t.Fatalf("unexpected tag-only line %q", lines[1])
	}
}

func TestSetLevelName(t *testing.T) {
	buf := capture(t)
	if err := SetLevelName("warn"); err != nil {
		t.Fatal(err)
	}
	DropMessage("QUIET", "suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info message leaked at warn level: %q", buf.String())
	}
	if err := SetLevelName("loud"); err == nil {
		t.Fatal("unknown level name must be rejected")
	}
}
