// Package logger wraps zap with a process-wide default logger and lets
// callers carry a request-scoped logger in a context.
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects zap's console preset at debug level.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment selects zap's JSON preset at info level.
	ProductionEnvironment = "production"
)

var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup installs the preset logger for environment. Unknown environments get
// the development preset.
func Setup(environment string) {
	_ = SetupWithLevel(environment, "")
}

// SetupWithLevel installs the preset logger for environment, overriding its
// level when level is not empty. Accepted levels are the ones zap parses
// (debug, info, warn, error, dpanic, panic, fatal).
func SetupWithLevel(environment, level string) error {
	cfg := presetConfig(environment)
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defaultLogger = l

	return nil
}

func presetConfig(environment string) zap.Config {
	if environment == ProductionEnvironment {
		return zap.NewProductionConfig()
	}

	return zap.NewDevelopmentConfig()
}

type key struct{}

// Get returns the logger stored in ctx, or the default one.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}

	return defaultLogger
}

// WithLogger stores l in ctx.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields derives a logger carrying fields and stores it in ctx. Every
// entry logged through the returned context includes them.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Enabled reports whether the logger in ctx writes entries at lvl.
func Enabled(ctx context.Context, lvl zapcore.Level) bool {
	return Get(ctx).Core().Enabled(lvl)
}

// Sync flushes the default logger.
func Sync() {
	_ = defaultLogger.Sync()
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs at fatal level and exits the process.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
