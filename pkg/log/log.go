// Package log provides the logging interface shared by the emulator
// components, backed by logrus.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// Level controls which messages are emitted by a Logger created with New.
type Level = logrus.Level

const (
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

type logger struct {
	*logrus.Logger
}

// New returns a Logger writing to stderr at the info level.
func New() Logger {
	return NewWithOutput(os.Stderr, InfoLevel)
}

// NewWithOutput returns a Logger writing plain text lines to w,
// discarding anything below level.
func NewWithOutput(w io.Writer, level Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	return &logger{Logger: l}
}

// ParseLevel converts a level name such as "debug" into a Level.
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}
