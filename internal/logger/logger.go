// Package logger wraps zerolog.Logger with the constructors and context
// helpers shared by the draft service and the register-side engine.
//
// Logger embeds zerolog.Logger, so the full zerolog API (Debug, Info, Warn,
// Error, Fatal) is available on *Logger directly. HTTP handlers obtain their
// request-scoped logger through FromRequest; engine code running off a plain
// context uses FromContext.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger so helper methods can be added without
// shadowing the upstream API.
type Logger struct {
	zerolog.Logger
}

// newZerolog applies the process-wide zerolog settings and builds the base
// logger: Debug level globally, a "func" caller field carrying the
// fully-qualified function name, and a "role" field for telling server and
// register entries apart in mixed logs.
func newZerolog(w io.Writer, role string) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()
}

// NewLogger builds the server-side logger: JSON to stdout, tagged with role.
func NewLogger(role string) *Logger {
	return &Logger{newZerolog(os.Stdout, role)}
}

// NewClientLogger builds the register-side logger. The register runs headless
// and its stdout usually goes nowhere, so output lands in cart-keeper.log
// next to the executable; if the file cannot be opened, stdout is the
// fallback.
func NewClientLogger(role string) *Logger {
	var w io.Writer = os.Stdout

	// Лог пишем рядом с бинарём: на кассе нет гарантированного $HOME.
	if execPath, err := os.Executable(); err == nil {
		logPath := filepath.Join(filepath.Dir(execPath), "cart-keeper.log")
		if f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			w = f
		}
	}

	return &Logger{newZerolog(w, role)}
}

// Nop returns a *Logger that discards everything. For tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy inheriting the receiver's fields. The child
// can be enriched via UpdateContext without touching the parent.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger bound to the request context, normally the
// trace-id-enriched one the HTTP middleware attached. Falls back to zerolog's
// global logger, never nil.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}

// FromContext returns the logger bound to ctx, falling back to zerolog's
// global logger when none was attached. Never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
