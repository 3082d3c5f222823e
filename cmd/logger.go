package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the JSON slog logger. With LOG_FILE set, records also go to a
// size-rotated file; the returned closer releases it.
func NewLogger(config Config) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)

	if config.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    100, // MB before it rolls
			MaxBackups: 7,
			MaxAge:     30, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: ParseLogLevel(config.LogLevel)})
	return slog.New(handler).With("service", "shiptrack"), closer
}

// ParseLogLevel maps LOG_LEVEL to a slog level. Unknown names mean INFO.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
