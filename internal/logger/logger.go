package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger exposes logging methods for common severity levels.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type zerologLogger struct {
	log zerolog.Logger
}

// New creates a Logger tagged with the given component. APP_ENV=dev switches to a human readable console output.
func New(component string) Logger {
	return NewWithLevel(component, "info")
}

// NewWithLevel is like New with an explicit minimum level ("debug", "info", "warn", "error"); unknown levels fall back to info.
func NewWithLevel(component, level string) Logger {
	var out io.Writer = os.Stderr
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(out, component, level)
}

func NewWithWriter(out io.Writer, component, level string) Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	z := zerolog.New(out).Level(parsed).With().Timestamp().Str("component", component).Logger()
	return &zerologLogger{log: z}
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &zerologLogger{log: zerolog.Nop()}
}

func (l *zerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
