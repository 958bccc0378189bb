package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default slog handler. pretty selects a
// human-readable text handler for CLIs, otherwise JSON for collectors.
func InitSlog(pretty bool) {
	var handler slog.Handler
	if pretty {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	slog.SetDefault(slog.New(handler))
}
