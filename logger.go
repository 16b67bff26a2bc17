package glfont

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so the size search
// and glyph loops build no attributes while glfont is silent.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the logger Generate and OpenFont report progress to.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes atlas generation progress to l. glfont is silent until
// SetLogger is called; nil makes it silent again.
//
// Records by level:
//   - [slog.LevelDebug]: each font size tried, each glyph loaded, the number
//     of kerning pairs kept, fonts without GPOS kerning
//   - [slog.LevelInfo]: the chosen font size and the final atlas occupancy
//   - [slog.LevelWarn]: code points the font cannot render and a missing
//     space glyph
//
// makeglfont installs a text handler on stderr at Info, or Debug with -v:
//
//	glfont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger set by SetLogger, or a silent one. It is safe to
// call while another goroutine calls SetLogger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
