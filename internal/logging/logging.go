package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Open builds a logger writing to the given file. The TUI owns the terminal,
// so nothing may log to stderr while it runs; everything goes to the file.
// An empty path returns a disabled logger and a no-op closer.
func Open(path, level string) (*logrus.Logger, io.Closer, error) {
	if path == "" {
		return Nop(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log, f, nil
}

// Nop returns a logger that drops everything below panic level. Handy for
// tests and for components built without a configured log file.
func Nop() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
