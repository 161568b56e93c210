// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the process-wide logger. It discards everything until Init is
// called, so library callers and tests stay quiet.
//
//nolint:gochecknoglobals // shared logger
var Logger = defaultLogger()

func defaultLogger() (l zerolog.Logger) {
	l = zerolog.Nop()
	return l
}

// Config controls logger behaviour.
type Config struct {
	Level        string `json:"level" yaml:"level"`
	Format       string `json:"format" yaml:"format"` // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
}

// Init replaces the global logger according to config, writing to os.Stderr.
func Init(config Config) {
	InitWithWriter(config, os.Stderr)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(config Config, out io.Writer) {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = timeFormat

	output := out
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeFormat,
		}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}

	Logger = ctx.Logger()
	log.Logger = Logger
}

// Debug starts a debug level event.
func Debug() (event *zerolog.Event) {
	event = Logger.Debug()
	return event
}

// Info starts an info level event.
func Info() (event *zerolog.Event) {
	event = Logger.Info()
	return event
}

// Warn starts a warning level event.
func Warn() (event *zerolog.Event) {
	event = Logger.Warn()
	return event
}

// Error starts an error level event.
func Error() (event *zerolog.Event) {
	event = Logger.Error()
	return event
}

// WithContext attaches the global logger to ctx.
func WithContext(ctx context.Context) (out context.Context) {
	out = Logger.WithContext(ctx)
	return out
}

// Ctx returns the logger stored in ctx, or a disabled logger.
func Ctx(ctx context.Context) (l *zerolog.Logger) {
	l = zerolog.Ctx(ctx)
	return l
}
