package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levels maps configured names to zap levels; "none" disables logging.
var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
	"none":  zapcore.FatalLevel + 1,
}

// NewLogger returns the program logger. Console output goes to stderr since
// stdout carries the error line. When LogFile is set every entry at the
// configured level is appended to it as well. The returned function closes
// the log file.
func (c *Config) NewLogger() (*zap.Logger, func() error, error) {
	level, ok := levels[c.LogLevel]
	if !ok {
		return nil, nil, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.LogLevel == "none" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level),
	}

	closer := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to access log file (%s): %w", c.LogFile, err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(f), level))
		closer = f.Close
	}

	return zap.New(zapcore.NewTee(cores...)).Named("seatmap"), closer, nil
}
