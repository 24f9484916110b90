// Package logging builds the zap loggers used by the pipeline and the CLI.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption adjusts the zap configuration before the logger is built.
type LoggerOption func(*zap.Config)

// New builds a logger from the production JSON configuration with the
// given options applied.
func New(options ...LoggerOption) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	for _, option := range options {
		if option != nil {
			option(&cfg)
		}
	}
	return cfg.Build()
}

// LoggerWithLevel sets the minimum level. Unknown names select info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(cfg *zap.Config) {
		cfg.Level = zap.NewAtomicLevelAt(ParseLevel(levelStr))
	}
}

// LoggerWithDevelopment switches to the human-readable console encoder
// with development-mode stack traces. Level, fields and output paths set
// by earlier options are kept.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(cfg *zap.Config) {
		if !dev {
			return
		}
		prev := *cfg
		*cfg = zap.NewDevelopmentConfig()
		cfg.Level = prev.Level
		cfg.InitialFields = prev.InitialFields
		cfg.OutputPaths = prev.OutputPaths
		cfg.ErrorOutputPaths = prev.ErrorOutputPaths
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(cfg *zap.Config) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]interface{}{}
		}
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.InitialFields[key] = value
		}
	}
}

// LoggerWithOutputPaths replaces the sinks, e.g. "stderr" or a file path.
func LoggerWithOutputPaths(paths ...string) LoggerOption {
	return func(cfg *zap.Config) {
		if len(paths) > 0 {
			cfg.OutputPaths = paths
		}
	}
}

// ParseLevel converts a level name to a zap level.
func ParseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "dpanic":
		return zapcore.DPanicLevel
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
