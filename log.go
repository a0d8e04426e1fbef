package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the process logger. json writes structured lines to
// stdout for piping into analysis; pretty writes colored lines to stderr.
func newLogger(format string, debug bool) (*slog.Logger, error) {
	switch format {
	case "json", "":
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})), nil
	case "pretty":
		level := log.InfoLevel
		if debug {
			level = log.DebugLevel
		}
		handler := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		})
		return slog.New(handler), nil
	}
	return nil, fmt.Errorf("unknown log format %q (want json or pretty)", format)
}
