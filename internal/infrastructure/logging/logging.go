// Package logging builds the zap logger shared by the drivers.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// File is the log file path. Empty writes to stderr.
	File string
	// Level is a zap level name ("debug", "info", ...). Empty means info.
	Level string
	// MaxSizeMB, MaxBackups and MaxAgeDays control file rotation.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// EncoderConfig is the console layout used for every sink.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
}

// New creates a console-encoded logger. With a File set, output goes to a
// size-rotated file.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("failed to parse log level %q: %w", opts.Level, err)
		}
	}

	var ws zapcore.WriteSyncer
	if opts.File == "" {
		ws = zapcore.Lock(os.Stderr)
	} else {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 7),
		})
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(EncoderConfig()), ws, level)
	return zap.New(core, zap.AddCaller()), nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
