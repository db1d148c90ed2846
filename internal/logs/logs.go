// Package logs builds the structured loggers used by the CLI and the pipeline.
package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

func init() {
	level.Set(slog.LevelWarn)
}

// SetLevel changes the level of every logger created by New.
func SetLevel(l slog.Level) {
	level.Set(l)
}

func Level() slog.Level {
	return level.Level()
}

type Options struct {
	// Writer receives human readable records, usually os.Stderr.
	Writer io.Writer
	// JSON switches Writer to JSON records.
	JSON bool
	// File, when set, additionally receives JSON records.
	File io.Writer
}

func New(opts Options) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{
		Level: level,
	}

	var handlers []slog.Handler
	if opts.Writer != nil {
		if opts.JSON {
			handlers = append(handlers, slog.NewJSONHandler(opts.Writer, handlerOptions))
		} else {
			handlers = append(handlers, slog.NewTextHandler(opts.Writer, handlerOptions))
		}
	}
	if opts.File != nil {
		handlers = append(handlers, slog.NewJSONHandler(opts.File, handlerOptions))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}

// OpenFile opens path for appending log records.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// ForRun tags every record of logger with the run identifier.
func ForRun(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With(slog.String("run", runID))
}
