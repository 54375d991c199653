// Package logger provides verbose logging for the docs-dataset CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are written to stderr through zap to help users follow the pipeline.
// Output is human-readable on a terminal and JSON otherwise.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Log formats accepted by SetFormat.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	level             = zapcore.DebugLevel
	format            = FormatAuto
	fields  []zap.Field
	sugar   = zap.NewNop().Sugar()
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// SetLevel sets the minimum level (debug, info, warn, error).
func SetLevel(s string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", s, err)
	}
	mu.Lock()
	defer mu.Unlock()
	level = l
	rebuild()
	return nil
}

// SetFormat selects console, json or auto (console on a terminal).
func SetFormat(f string) error {
	f = strings.ToLower(f)
	switch f {
	case FormatAuto, FormatConsole, FormatJSON:
	case "":
		f = FormatAuto
	case "text":
		f = FormatConsole
	default:
		return fmt.Errorf("invalid log format %q", f)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	rebuild()
	return nil
}

// SetRunID attaches a run identifier to every subsequent entry.
func SetRunID(id string) {
	mu.Lock()
	defer mu.Unlock()
	fields = []zap.Field{zap.String("run_id", id)}
	rebuild()
}

// Reset restores the defaults. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose = false
	output = os.Stderr
	level = zapcore.DebugLevel
	format = FormatAuto
	fields = nil
	rebuild()
}

// rebuild replaces the zap logger (caller must hold lock).
func rebuild() {
	if !verbose {
		sugar = zap.NewNop().Sugar()
		return
	}

	var enc zapcore.Encoder
	if useConsole() {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.TimeKey = ""
		enc = zapcore.NewConsoleEncoder(cfg)
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(output), level)
	sugar = zap.New(core).With(fields...).Sugar()
}

// useConsole decides the encoder (caller must hold lock).
func useConsole() bool {
	switch format {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	}
	f, ok := output.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Debug logs a message if verbose mode is enabled.
func Debug(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Debugf(template, args...)
}

// Section logs a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infow("=== "+name+" ===", "section", name)
}

// Info logs an informational message if verbose mode is enabled.
func Info(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Infof(template, args...)
}

// Warn logs a warning message if verbose mode is enabled.
func Warn(template string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	sugar.Warnf(template, args...)
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = sugar.Sync()
}
