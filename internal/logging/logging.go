// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the slog logger used by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

type options struct {
	level   slog.Level
	logFile string
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimum level. The default is slog.LevelWarn.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithLogFile sends JSON logs to a size-rotated file instead of the console
// writer. An empty path keeps console output.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// New returns a logger writing to w, or to a rotated log file when
// WithLogFile is given. The returned closer releases the log file and must be
// called once logging is done.
func New(w io.Writer, opts ...Option) (*slog.Logger, io.Closer) {
	o := options{level: slog.LevelWarn}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logFile != "" {
		out := &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
		}
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: o.level})), out
	}

	h := tint.NewHandler(w, &tint.Options{
		Level:      o.level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
	return slog.New(h), nopCloser{}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
