// internal/core/services/diagnostics.go
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Severity prefixes written to the diagnostics stream
const (
	PrefixError   = "Error:"
	PrefixWarning = "Warning:"
)

// Diagnostics is the error/warning channel of the inventory store. Every
// message goes to a plain text stream (stderr unless configured) and is
// mirrored into the structured logger.
type Diagnostics struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

// NewDiagnostics creates a diagnostics channel writing to out.
// A nil writer means os.Stderr.
func NewDiagnostics(out io.Writer, logger *slog.Logger) *Diagnostics {
	if out == nil {
		out = os.Stderr
	}
	return &Diagnostics{
		out:    out,
		logger: logger.With(slog.String("component", "diagnostics")),
	}
}

// Error reports a failure that aborted an operation
func (d *Diagnostics) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	d.emit(ctx, slog.LevelError, PrefixError, msg, attrs)
}

// Warning reports a recoverable condition
func (d *Diagnostics) Warning(ctx context.Context, msg string, attrs ...slog.Attr) {
	d.emit(ctx, slog.LevelWarn, PrefixWarning, msg, attrs)
}

func (d *Diagnostics) emit(ctx context.Context, level slog.Level, prefix, msg string, attrs []slog.Attr) {
	d.mu.Lock()
	// write errors are dropped; diagnostics never fail the caller
	_, _ = fmt.Fprintf(d.out, "%s %s\n", prefix, msg)
	d.mu.Unlock()

	d.logger.LogAttrs(ctx, level, msg, attrs...)
}
