// Package logging sets up the operator diagnostic channel. Diagnostics are
// kept apart from narration: the player reads stdout, the operator reads
// whatever the logger is pointed at (stderr by default).
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// EnvLevel is consulted for the log level when none is given.
	EnvLevel = "DELVEQ_LOG_LEVEL"

	// EnvFormat is consulted for the log format when none is given.
	EnvFormat = "DELVEQ_LOG_FORMAT"
)

// New creates a logger writing to stderr. Level is one of the logrus level
// names ("debug", "info", "warn", "error"); format is "text" or "json". Empty
// values fall back to EnvLevel and EnvFormat, then to "warn" and "text".
func New(level, format string) *logrus.Logger {
	return NewTo(os.Stderr, level, format)
}

// NewTo is like New but writes to w.
func NewTo(w io.Writer, level, format string) *logrus.Logger {
	log := logrus.New()

	if level == "" {
		level = os.Getenv(EnvLevel)
	}
	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}
	log.SetLevel(lvl)

	if format == "" {
		format = os.Getenv(EnvFormat)
	}
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	log.SetOutput(w)
	return log
}

// Discard returns an entry whose output goes nowhere. It is the default for
// components that were not given a logger.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

// Component returns an entry for the named component derived from base. If
// base is nil, a discarding entry is used.
func Component(base *logrus.Entry, name string) *logrus.Entry {
	if base == nil {
		base = Discard()
	}
	return base.WithField("component", name)
}
