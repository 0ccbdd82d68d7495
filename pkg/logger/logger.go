// Package logger provides scoped diagnostic loggers for metaforge packages.
//
// Each file that wants logging declares a package-level logger with a
// "package:file" scope, e.g.:
//
//	var clientLog = logger.New("client:glossary")
//
// Output goes to stderr through hashicorp/go-hclog and is silent unless the
// METAFORGE_LOG environment variable names a level (trace, debug, info, warn,
// error). Scoped loggers keep a Printf-style surface so call sites stay
// compact.
package logger

import (
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/metaforge-io/metaforge/pkg/constants"
)

var (
	rootOnce sync.Once
	root     hclog.Logger
)

func rootLogger() hclog.Logger {
	rootOnce.Do(func() {
		level := hclog.Off
		if v := os.Getenv(constants.EnvLogLevel); v != "" {
			level = hclog.LevelFromString(v)
			if level == hclog.NoLevel {
				level = hclog.Debug
			}
		}
		root = hclog.New(&hclog.LoggerOptions{
			Name:   "metaforge",
			Level:  level,
			Output: os.Stderr,
		})
	})
	return root
}

// Logger is a scoped diagnostic logger.
type Logger struct {
	hl hclog.Logger
}

// New returns a logger scoped to the given name.
func New(scope string) *Logger {
	return &Logger{hl: rootLogger().Named(scope)}
}

// Printf logs a formatted message at debug level.
func (l *Logger) Printf(format string, args ...any) {
	if l.hl.IsDebug() {
		l.hl.Debug(sprintf(format, args...))
	}
}

// Print logs a message at debug level.
func (l *Logger) Print(args ...any) {
	if l.hl.IsDebug() {
		l.hl.Debug(sprint(args...))
	}
}

// Errorf logs a formatted message at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.hl.Error(sprintf(format, args...))
}

// Warnf logs a formatted message at warn level.
func (l *Logger) Warnf(format string, args ...any) {
	l.hl.Warn(sprintf(format, args...))
}
