// Package logger provides the shared structured logger for the platform.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Config controls logger construction.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is "json" or "text". Defaults to json.
	Format string
	// Output is "stdout" or "stderr". Defaults to stdout.
	Output string
}

// Logger wraps a logrus entry carrying the component field.
type Logger struct {
	entry *logrus.Entry
}

// New builds a logger from configuration for the named component.
func New(cfg Config, component string) *Logger {
	l := logrus.New()
	l.SetOutput(output(cfg.Output))

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return &Logger{entry: l.WithField("component", component)}
}

// NewDefault returns an info-level JSON logger for the named component.
func NewDefault(component string) *Logger {
	return New(Config{}, component)
}

// Named returns a copy of the logger scoped to a sub-component.
func (l *Logger) Named(component string) *Logger {
	return &Logger{entry: l.entry.WithField("component", component)}
}

// WithField attaches a structured field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithError attaches an error field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

func (l *Logger) Debug(args ...any)                 { l.entry.Debug(args...) }
func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Info(args ...any)                  { l.entry.Info(args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warn(args ...any)                  { l.entry.Warn(args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Error(args ...any)                 { l.entry.Error(args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

func output(name string) io.Writer {
	if strings.EqualFold(name, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
