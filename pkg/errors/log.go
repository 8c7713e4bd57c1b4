package errors

import (
	"log/slog"
)

// LogHandler is a Handler that reports errors through a slog.Logger.
// The zero value logs to slog.Default().
type LogHandler struct {
	// Logger is the destination logger. Nil means slog.Default().
	Logger *slog.Logger
	// Verbose enables stack traces on recovered panics.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	h.logger().Error("harness error", "op", err.Op, "kind", err.Kind.String(), "error", err.Err)
}

// HandlePanic logs a recovered panic.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if h.Verbose && err.StackTrace != "" {
		h.logger().Error("recovered panic", "op", err.Op, "value", err.Value, "stack", err.StackTrace)
		return
	}
	h.logger().Error("recovered panic", "op", err.Op, "value", err.Value)
}
