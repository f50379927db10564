// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go - cold-path structured logging
//
// Purpose:
//   - One process-wide zerolog logger for lifecycle events, scenario results
//     and failure diagnostics.
//   - DropMessage / DropError keep the call sites one line long.
//
// Notes:
//   - Output is JSON lines on stderr by default; SetOutput redirects it.
//   - The logger is swapped atomically so tests can capture output while other
//     goroutines are still logging.
//
// ⚠️ Never invoke in hot loops (Produce/Consume, spin waits); cold paths only.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	SetOutput(os.Stderr)
}

// SetOutput replaces the log sink, keeping the current level.
func SetOutput(w io.Writer) {
	level := zerolog.InfoLevel
	if l := current.Load(); l != nil {
		level = l.GetLevel()
	}
	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	current.Store(&l)
}

// SetLevel changes the minimum level that reaches the sink.
func SetLevel(level zerolog.Level) {
	l := current.Load().Level(level)
	current.Store(&l)
}

// SetLevelName parses a level name ("debug", "info", "warn", ...) and
// applies it.
func SetLevelName(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}

// Logger returns the process logger for call sites that attach fields.
func Logger() *zerolog.Logger {
	return current.Load()
}

// DropError logs err under the given tag at warn level.  A nil err logs the
// tag alone (useful for tagged warnings without an underlying error).
func DropError(prefix string, err error) {
	l := current.Load()
	if err != nil {
		l.Warn().Str("tag", prefix).Err(err).Send()
		return
	}
	l.Warn().Str("tag", prefix).Send()
}

// DropMessage logs an informational message under the given tag.
func DropMessage(prefix, message string) {
	current.Load().Info().Str("tag", prefix).Msg(message)
}
