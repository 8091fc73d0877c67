package shutdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	// DefaultTimeout bounds the whole component shutdown sequence.
	DefaultTimeout = 5 * time.Second

	// DefaultTerminationFile is written by the pod preStop hook.
	DefaultTerminationFile = "/mnt/signal/terminating"
)

// Notify returns a channel that will receive SIGTERM and SIGINT signals.
// This should be called as the first thing in main() before any other initialization.
func Notify() <-chan os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

	return signals
}

type Handler struct {
	logger          *slog.Logger
	signals         signalSource
	terminationFile string
}

// New creates a new shutdown handler.
func New(logger *slog.Logger, signals signalSource, terminationFile string) *Handler {
	return &Handler{
		logger:          logger,
		signals:         signals,
		terminationFile: terminationFile,
	}
}

// HandleSignals cancels the context on SIGTERM or SIGINT.
func (h *Handler) HandleSignals(ctx context.Context, cancel func()) {
	select {
	case <-ctx.Done():
		h.logger.InfoContext(ctx, "terminating signal handler due to context done")

		return
	case sig := <-h.signals.Quit():
		h.logger.InfoContext(ctx, "received termination signal, terminating", "signal", sig)
	}

	cancel()
}

// CheckTermination refuses to start a process whose pod is already terminating.
func (h *Handler) CheckTermination(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("termination context done before startup: %w", ctx.Err())
	default:
	}

	if CheckTerminationFile(ctx, h.logger, h.terminationFile) {
		return fmt.Errorf("%w: %s", ErrTerminating, h.terminationFile)
	}

	return nil
}

// CheckTerminationFile reports whether the termination file exists. An empty path disables the check.
func CheckTerminationFile(ctx context.Context, logger *slog.Logger, terminationFile string) bool {
	if terminationFile == "" {
		return false
	}

	_, err := os.Stat(terminationFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.ErrorContext(ctx, "error checking termination file",
				"reason", err,
				"path", terminationFile,
			)
		}

		return false
	}

	logger.InfoContext(ctx, "termination file found", "path", terminationFile)

	return true
}

// GracefulShutdown shuts components down in reverse registration order within DefaultTimeout.
// Every component is attempted; errors are joined.
func GracefulShutdown(
	originCtx context.Context,
	logger *slog.Logger,
	shutdowners []Shutdowner,
) error {
	// shutdown must outlive a cancelled run context
	ctx, cancel := context.WithTimeout(context.WithoutCancel(originCtx), DefaultTimeout)
	defer cancel()

	var errs error

	for i := len(shutdowners) - 1; i >= 0; i-- {
		start := time.Now()
		shutdowner := shutdowners[i]
		name := shutdowner.Name()

		if err := shutdowner.Shutdown(ctx); err != nil {
			logger.ErrorContext(ctx, "component shutdown failed",
				"component", name,
				"duration", time.Since(start),
				"reason", err,
			)

			errs = errors.Join(errs, fmt.Errorf("shutdown %s: %w", name, err))

			continue
		}

		logger.InfoContext(ctx, "component shutdown completed",
			"component", name,
			"duration", time.Since(start),
		)
	}

	return errs
}
