package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig holds logger configuration. Empty fields take the
// DefaultLoggerConfig values.
type LoggerConfig struct {
	Level      string // debug, info, warn, error
	OutputPath string // stderr, stdout, or file path
	Format     string // console or json
}

// DefaultLoggerConfig keeps stdout free for reports
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{Level: "info", OutputPath: "stderr", Format: "console"}
}

func (c LoggerConfig) withDefaults() LoggerConfig {
	d := DefaultLoggerConfig()
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.OutputPath == "" {
		c.OutputPath = d.OutputPath
	}
	if c.Format == "" {
		c.Format = d.Format
	}
	return c
}

// ParseLogLevel parses a zap level name
func ParseLogLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewLogger creates the command line logger.
// Console output to a terminal stream is short lines with colored levels and
// no caller. JSON output and file sinks keep timestamps and callers.
func NewLogger(cfg LoggerConfig) (*zap.Logger, error) {
	cfg = cfg.withDefaults()

	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	writeSyncer, terminal, err := openSink(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output: %w", err)
	}

	var encoder zapcore.Encoder
	switch cfg.Format {
	case "json":
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case "console":
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		if terminal {
			encoderConfig.TimeKey = ""
			encoderConfig.CallerKey = ""
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encoderConfig.TimeKey = "timestamp"
			encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if !terminal || cfg.Format == "json" {
		opts = append(opts, zap.AddCaller())
	}
	return zap.New(core, opts...), nil
}

// openSink resolves the output path; terminal reports a standard stream
func openSink(path string) (zapcore.WriteSyncer, bool, error) {
	switch path {
	case "stderr":
		return zapcore.Lock(os.Stderr), true, nil
	case "stdout":
		return zapcore.Lock(os.Stdout), true, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, false, err
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, false, err
	}
	return zapcore.AddSync(file), false, nil
}
