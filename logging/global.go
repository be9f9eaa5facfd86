package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/medic-api/config"
)

type LoggingService struct {
	Logger  *slog.Logger
	closeFn func() error
}

// Close releases the file sink, if any
func (s *LoggingService) Close() error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

var DefaultLoggingService *LoggingService

// Options controls where and how verbosely the service logs
type Options struct {
	Dir            string // empty disables the file sink
	Env            config.Environment
	Level          string
	Verbose        bool
	RetentionWeeks int
	MaxFileSize    int64
}

// parseLogLevel maps LOG_LEVEL values to slog levels, defaulting to info
func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConsoleLogLevel picks the console level for an environment. Tests stay
// quiet unless verbose, whatever LOG_LEVEL says.
func GetConsoleLogLevel(env config.Environment, logLevel string, verbose bool) slog.Level {
	if env == config.EnvTest {
		if verbose {
			return slog.LevelInfo
		}
		return slog.LevelError
	}

	if logLevel != "" {
		return parseLogLevel(logLevel)
	}

	switch env {
	case config.EnvProduction, config.EnvStaging:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// GetFileLogLevel returns the file sink level; files always keep debug detail
func GetFileLogLevel() slog.Level {
	return slog.LevelDebug
}

// NewLogger builds a console + rotating file logger. The returned closer
// releases the file.
func NewLogger(opts Options) (*slog.Logger, func() error) {
	console := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})

	if opts.Dir == "" {
		return slog.New(console), func() error { return nil }
	}

	retention := opts.RetentionWeeks
	if retention <= 0 {
		retention = 4
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = 100 * 1024 * 1024
	}

	rotator, err := NewRotatingLogger(opts.Dir, retention, maxSize)
	if err != nil {
		logger := slog.New(console)
		logger.Error("Failed to initialize rotating logger, logging to console only", "error", err)
		return logger, func() error { return nil }
	}

	file := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: GetFileLogLevel()})
	return slog.New(&multiHandler{handlers: []slog.Handler{console, file}}), rotator.Close
}

// InitLogger initializes the global logger instance
func InitLogger(opts Options) *LoggingService {
	logger, closer := NewLogger(opts)
	svc := &LoggingService{Logger: logger, closeFn: closer}
	setDefault(svc)
	return svc
}

// InitDiscardLogger silences logging, used by tests
func InitDiscardLogger() {
	setDefault(&LoggingService{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
}

func setDefault(svc *LoggingService) {
	DefaultLoggingService = svc
	slog.SetDefault(svc.Logger)
}

// Package-level functions for direct access

// Logger returns the default logger, or a stderr logger before InitLogger runs
func Logger() *slog.Logger {
	return logger()
}

func logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return DefaultLoggingService.Logger
}

func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}
