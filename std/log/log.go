package log

import (
	"fmt"
	"log/slog"
	"os"
)

// Moduler is implemented by any component that wants to tag its log lines
// with an identity (e.g. an engine, a face, or a signer). A nil moduler is
// allowed at call sites that have no natural owner, such as package-level
// helpers or example programs.
type Moduler interface {
	String() string
}

var std = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: slog.LevelDebug,
}))

var level = LevelInfo

// Logger exposes the current minimum level that will be emitted.
type Logger struct{}

// Default returns the package-level logger.
func Default() Logger {
	return Logger{}
}

// Level returns the current minimum log level.
func (Logger) Level() Level {
	return level
}

// SetLevel changes the minimum log level emitted by the package-level logger.
func SetLevel(l Level) {
	level = l
}

func moduleArgs(mod any, kv []any) []any {
	if mod == nil {
		return kv
	}
	if m, ok := mod.(Moduler); ok {
		return append([]any{"module", m.String()}, kv...)
	}
	return append([]any{"module", fmt.Sprintf("%v", mod)}, kv...)
}

func emit(lvl Level, slvl slog.Level, mod any, msg string, kv ...any) {
	if lvl < level {
		return
	}
	std.Log(nil, slvl, msg, moduleArgs(mod, kv)...)
}

// Trace logs a message at TRACE level.
func Trace(mod any, msg string, kv ...any) {
	emit(LevelTrace, slog.LevelDebug-4, mod, msg, kv...)
}

// Debug logs a message at DEBUG level.
func Debug(mod any, msg string, kv ...any) {
	emit(LevelDebug, slog.LevelDebug, mod, msg, kv...)
}

// Info logs a message at INFO level.
func Info(mod any, msg string, kv ...any) {
	emit(LevelInfo, slog.LevelInfo, mod, msg, kv...)
}

// Warn logs a message at WARN level.
func Warn(mod any, msg string, kv ...any) {
	emit(LevelWarn, slog.LevelWarn, mod, msg, kv...)
}

// Error logs a message at ERROR level. mod may be nil.
func Error(mod any, msg string, kv ...any) {
	emit(LevelError, slog.LevelError, mod, msg, kv...)
}

// Fatal logs a message at FATAL level and terminates the process. mod may be nil.
func Fatal(mod any, msg string, kv ...any) {
	emit(LevelFatal, slog.LevelError+4, mod, msg, kv...)
	os.Exit(1)
}
