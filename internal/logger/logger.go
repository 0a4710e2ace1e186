// Package logger builds the process-wide slog handler.
//
// Development gets a tinted, human-readable console handler; production gets
// JSON written both to stderr and a size-rotated log file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/voxloom/voxloom/internal/env"
)

// Option configures the logger.
type Option func(*options)

type options struct {
	level     slog.Level
	logToFile bool
	logFile   string
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithLogToFile enables writing logs to a rotating file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) { o.logToFile = enabled }
}

// WithLogFile sets the rotating log file path.
func WithLogFile(path string) Option {
	return func(o *options) { o.logFile = path }
}

// New creates a logger for the given environment.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := &options{
		level:   slog.LevelInfo,
		logFile: "logs/voxloom.log",
	}
	for _, opt := range opts {
		opt(o)
	}

	if environment == env.Development {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		}))
	}

	var w io.Writer = os.Stderr
	if o.logToFile {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    20, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		})
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: o.level}))
}
