package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

type Options struct {
	Level slog.Level
	// File enables a rotating log file next to stderr when set.
	File string
}

// New returns a JSON logger writing to stderr and, optionally, to a rotating
// file. The returned closer releases the file.
func New(opts Options) (*slog.Logger, io.Closer) {
	return newWithWriter(os.Stderr, opts)
}

func newWithWriter(w io.Writer, opts Options) (*slog.Logger, io.Closer) {
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(w, file)
		closer = file
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level})

	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
