// Package logging builds the slog loggers used by the sparcmc commands.
package logging

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/Manu343726/sparcmc/pkg/utils"
	slogmulti "github.com/samber/slog-multi"
)

var ErrInvalidLevel = errors.New("invalid log level")

// Logger outputs. Nil outputs are disabled
type Options struct {
	// Minimum level of the records written to any output
	Level slog.Level
	// Human readable text output (usually stderr)
	Console io.Writer
	// JSON lines output (usually a log file)
	JSON io.Writer
}

// Parses a level name (debug, info, warn, error), case insensitive
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, utils.MakeError(ErrInvalidLevel, "'%v'", level)
}

// Returns a logger writing every record to all the enabled outputs
func New(options Options) *slog.Logger {
	handlerOptions := &slog.HandlerOptions{Level: options.Level}
	handlers := []slog.Handler{}

	if options.Console != nil {
		handlers = append(handlers, slog.NewTextHandler(options.Console, handlerOptions))
	}

	if options.JSON != nil {
		handlers = append(handlers, slog.NewJSONHandler(options.JSON, handlerOptions))
	}

	return slog.New(slogmulti.Fanout(handlers...))
}
