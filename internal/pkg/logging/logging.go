// Package logging builds the slog loggers used by the server, the jobs and the
// operator CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	// FieldComponent names the subsystem that produced a record.
	FieldComponent = "component"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string

	// Output defaults to os.Stdout.
	Output io.Writer
}

// New constructs a slog logger. With no format set, a terminal gets text output
// and anything else gets JSON.
func New(opts Options) (*slog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = defaultFormat(out)
	}

	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(out, handlerOpts)), nil
	case FormatText, "console":
		return slog.New(slog.NewTextHandler(out, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// ParseLevel maps a level name to a slog level. An empty name means info.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}

// NewComponentLogger returns logger with a component attribute. A nil logger
// yields a discarding one.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// NewNop returns a logger that drops every record.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func defaultFormat(out io.Writer) string {
	f, ok := out.(*os.File)
	if !ok {
		return FormatJSON
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	return FormatJSON
}
