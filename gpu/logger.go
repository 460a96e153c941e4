// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by gpu, pipeline and the
// sketches. By default nothing is logged. Pass nil to restore the
// silent default.
//
// Levels in use:
//   - [slog.LevelDebug]: per-frame and per-resource diagnostics
//   - [slog.LevelInfo]: device creation and sketch lifecycle
//   - [slog.LevelWarn]: degraded features
//   - [slog.LevelError]: shader compile and link failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
