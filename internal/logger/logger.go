// Package logger builds the slog logger used across the service.
package logger

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// New returns a slog logger backed by a charmbracelet handler writing to w.
// format is one of text, json or logfmt.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	var formatter log.Formatter
	switch format {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, errors.Errorf("invalid log format %q", format)
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          "studytrack",
	})
	return slog.New(handler), nil
}
