// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/ytget/vivid-downloader/internal/config"
)

// New returns a logger writing to out, configured by cfg. When cfg.File is
// set, output goes to that file instead and the returned closer releases it.
// An unknown level falls back to info.
func New(fs afero.Fs, cfg config.LogConfig, out io.Writer) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	log.SetOutput(out)

	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	closer := func() error { return nil }
	if cfg.File == "" {
		return log, closer, nil
	}

	if err := fs.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, closer, fmt.Errorf("create log directory: %w", err)
	}
	f, err := fs.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, closer, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)

	return log, f.Close, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
