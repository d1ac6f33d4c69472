package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. Used by tests to keep
// suite output readable.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
