// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AppName names the root logger.
const AppName = "inlinechrome"

// Levels understood by LoggerConfig.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// LoggerConfig configures a single log sink.
type LoggerConfig struct {
	Level       string `yaml:"level"`
	Destination string `yaml:"destination,omitempty"`
	Mode        string `yaml:"mode,omitempty"`
}

// Config configures console and file sinks.
type Config struct {
	Console LoggerConfig `yaml:"console"`
	File    LoggerConfig `yaml:"file"`
}

// DefaultConfig logs normal messages to the console and nothing to file.
func DefaultConfig() Config {
	return Config{
		Console: LoggerConfig{Level: LevelNormal},
		File:    LoggerConfig{Level: LevelNone, Mode: "append"},
	}
}

// ValidLevel reports whether lvl is a known level name.
func ValidLevel(lvl string) bool {
	switch lvl {
	case LevelNone, LevelNormal, LevelDebug:
		return true
	}
	return false
}

// Prepare returns a configured logger. Console output is split: errors go to
// stderr, everything below to stdout. The file sink is only opened when its
// level is not none.
func (conf *Config) Prepare() (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	var consoleHP, consoleLP zapcore.Core
	switch conf.Console.Level {
	case LevelNormal:
		consoleLP = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		consoleHP = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), highPriority)
	case LevelDebug:
		consoleLP = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.DebugLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		consoleHP = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), highPriority)
	default:
		consoleLP = zapcore.NewNopCore()
		consoleHP = zapcore.NewNopCore()
	}

	fileCore := zapcore.NewNopCore()
	var level zap.AtomicLevel
	switch conf.File.Level {
	case LevelDebug:
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case LevelNormal:
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	if conf.File.Level == LevelDebug || conf.File.Level == LevelNormal {
		if conf.File.Destination == "" {
			return nil, fmt.Errorf("file logging requested without destination")
		}
		f, err := openLog(conf.File.Destination, conf.File.Mode)
		if err != nil {
			return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.File.Destination, err)
		}
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), level)
	}

	logger := zap.New(zapcore.NewTee(consoleHP, consoleLP, fileCore), zap.AddCaller())
	return logger.Named(AppName), nil
}

// WithoutConsole returns a copy of the configuration with console output
// disabled. Full-screen terminal programs use it so log lines do not land
// on top of the drawn screen.
func (conf Config) WithoutConsole() Config {
	conf.Console.Level = LevelNone
	return conf
}

func openLog(name, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "overwrite" {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	return os.OpenFile(name, flags, 0o644)
}
