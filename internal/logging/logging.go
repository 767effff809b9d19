package logging

import (
	"io"
	"log"
	"log/slog"
)

// Setup installs the default slog logger writing text records to w. Only
// warnings and errors are shown unless debug is set.
func Setup(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// Also redirect standard log package to the same writer
	log.SetOutput(w)
	log.SetFlags(0)

	slog.Debug("logging initialized", "debug", debug)

	return logger
}
