package config

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger: text output to w and, when a log file
// is configured, a rotating copy on disk.
func NewLogger(c Config, w io.Writer) *slog.Logger {
	out := w
	if c.Log.File != "" {
		out = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   c.Log.File,
			MaxSize:    100, // MB
			MaxBackups: 30,
			MaxAge:     90, // days
		})
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: c.Log.Level}))
}
