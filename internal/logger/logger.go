// Package logger sets up the zerolog logger shared by the application.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Setup.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means info.
	Level string

	// Console receives human-readable output. Nil means os.Stderr.
	Console io.Writer

	// Dir, when set, also writes JSON lines to <Dir>/<date>.log.
	Dir string

	// FileOptional keeps the console logger when the log file cannot be
	// created, and logs a warning instead of failing.
	FileOptional bool
}

// Setup builds the application logger.
//
// The returned closer flushes and closes the log file; it is a no-op when no
// file was opened.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: "2006-01-02 15:04:05"},
	}

	var (
		closer  io.Closer = nopCloser{}
		fileErr error
	)
	if opts.Dir != "" {
		f, err := openLogFile(opts.Dir)
		switch {
		case err == nil:
			writers = append(writers, f)
			closer = f
		case opts.FileOptional:
			fileErr = err
		default:
			return zerolog.Nop(), nopCloser{}, err
		}
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("dir", opts.Dir).Msg("logging to console only")
	}

	return log, closer, nil
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	name := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
