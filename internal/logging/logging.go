// Package logging wires up decred/slog for the server, grounded on the
// teacher's own use of slog.NewBackend (see e2e/test_showdown_event.go and
// pkg/poker/table.go's "TESTING" logger). The teacher's actual production
// wiring goes through bisonbotkit/logging.LogBackend, a package absent from
// the retrieval pack, so this is a direct-to-slog replacement rather than a
// fabricated stand-in (see DESIGN.md).
package logging

import (
	"io"
	"os"

	"github.com/decred/slog"
)

// Backend owns one slog.Backend writing to a single output stream and hands
// out per-subsystem loggers from it, the way the teacher's LogBackend does.
type Backend struct {
	backend *slog.Backend
	level   slog.Level
}

// New creates a Backend writing to w at the given level. levelName accepts
// the usual slog level names ("trace", "debug", "info", "warn", "error",
// "critical"); an unrecognized name falls back to "info".
func New(w io.Writer, levelName string) *Backend {
	level, ok := slog.LevelFromString(levelName)
	if !ok {
		level = slog.LevelInfo
	}
	return &Backend{backend: slog.NewBackend(w), level: level}
}

// NewStdout is the common case: log to stdout at the given level.
func NewStdout(levelName string) *Backend {
	return New(os.Stdout, levelName)
}

// Logger returns a named logger (subsystem tag, e.g. "RMGR", "GAME", "GTWY")
// at the backend's configured level.
func (b *Backend) Logger(subsystem string) slog.Logger {
	l := b.backend.Logger(subsystem)
	l.SetLevel(b.level)
	return l
}

// discard implements slog.Logger by dropping everything, used by tests that
// need a Logger value but don't care about output.
type discard struct{}

func (discard) Tracef(string, ...interface{})    {}
func (discard) Debugf(string, ...interface{})    {}
func (discard) Infof(string, ...interface{})     {}
func (discard) Warnf(string, ...interface{})     {}
func (discard) Errorf(string, ...interface{})    {}
func (discard) Criticalf(string, ...interface{}) {}
func (discard) Trace(...interface{})             {}
func (discard) Debug(...interface{})             {}
func (discard) Info(...interface{})              {}
func (discard) Warn(...interface{})              {}
func (discard) Error(...interface{})              {}
func (discard) Critical(...interface{})          {}
func (discard) Level() slog.Level                { return slog.LevelOff }
func (discard) SetLevel(slog.Level)              {}

// Discard is a slog.Logger that drops every message, for tests and call
// sites that construct a Controller/Hub without a real backend.
var Discard slog.Logger = discard{}
