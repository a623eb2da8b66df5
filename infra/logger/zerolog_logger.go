package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

var (
	mu          sync.RWMutex
	levelName   string
	formatName  string
	destination io.Writer = os.Stdout
)

// Configure sets the level and format ("json" or "console") of loggers
// created afterwards. Empty values fall back to LOG_LEVEL and APP_ENV.
func Configure(level, format string) {
	mu.Lock()
	defer mu.Unlock()
	levelName, formatName = level, format
}

// NewZerologLogger writes to stdout. APP_ENV=dev switches to the console
// writer; LOG_LEVEL (debug, info, warn, error) sets the minimum level, info
// by default.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	level, format, out := levelName, formatName, destination
	mu.RUnlock()
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	w := out
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(component, w, parseLevel(level))
}

// NewWithWriter builds a logger on w with the component field set.
func NewWithWriter(component string, w io.Writer, level zerolog.Level) *ZerologLogger {
	z := zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
