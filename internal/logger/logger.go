// Package logger provides the structured logger shared by the gdata-go
// packages and CLI. Output goes to stderr through a zerolog console writer;
// when verbose mode is enabled via the --verbose flag, debug messages are
// included so users can follow each query and parse step.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	base              = newLogger(os.Stderr, false)
)

// newLogger builds the console logger for w. Verbose mode lowers the level
// to debug; otherwise only warnings and errors are written.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	cw := zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      !isTerminal(w),
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(cw).Level(level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = newLogger(output, v)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = newLogger(w, verbose)
}

// L returns the current root logger.
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns a logger tagged with a component field. Call it at the
// point of use so level changes made by SetVerbose are picked up.
func Component(name string) zerolog.Logger {
	l := L()
	return l.With().Str("component", name).Logger()
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) {
	l := L()
	l.Debug().Msgf(format, args...)
}

// Section logs a section header at debug level.
func Section(name string) {
	l := L()
	l.Debug().Msgf("=== %s ===", name)
}

// Info logs a formatted message at info level.
func Info(format string, args ...any) {
	l := L()
	l.Info().Msgf(format, args...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...any) {
	l := L()
	l.Warn().Msgf(format, args...)
}
