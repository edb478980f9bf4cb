package logger

import (
	"log/slog"
	"os"
)

// New builds the process logger. Format is "json" for production log
// aggregation or "text" for local development; anything else falls back to
// text rather than failing startup.
func New(format string) *slog.Logger {
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, nil)
	default:
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	return slog.New(handler)
}
