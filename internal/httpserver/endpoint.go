package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
)

// endpoint owns one listening http.Server. Server and MetricsServer embed it
// and only differ by the router they serve.
type endpoint struct {
	name       string
	logger     *slog.Logger
	addr       string
	server     *http.Server
	ready      chan struct{}
	inShutdown atomic.Bool
}

func newEndpoint(logger *slog.Logger, name, port string) endpoint {
	return endpoint{
		name:   name,
		logger: logger.With("component", name),
		addr:   net.JoinHostPort("", port),
		ready:  make(chan struct{}),
	}
}

func (e *endpoint) Name() string {
	return e.name
}

func (e *endpoint) Ready() <-chan struct{} {
	return e.ready
}

// Ping is nil once the listener accepts connections.
func (e *endpoint) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.ready:
		return nil
	default:
		return fmt.Errorf("%s: %w", e.name, ErrNotReady)
	}
}

// serve binds synchronously so a busy port fails Start, then serves in a goroutine.
func (e *endpoint) serve(ctx context.Context, handler http.Handler) error {
	if e.inShutdown.Load() {
		e.logger.InfoContext(ctx, "skipping start, already shutting down")

		return nil
	}

	lc := &net.ListenConfig{
		KeepAliveConfig: net.KeepAliveConfig{Enable: true},
	}

	listener, err := lc.Listen(ctx, "tcp", e.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", e.addr, err)
	}

	e.server = &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	e.logger.InfoContext(ctx, "listening", "addr", listener.Addr().String())

	close(e.ready)

	go func() {
		err := e.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.ErrorContext(ctx, "serve failed", "reason", err)
		}
	}()

	return nil
}

func (e *endpoint) Shutdown(ctx context.Context) error {
	if !e.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	if e.server == nil {
		return nil
	}

	e.logger.InfoContext(ctx, "closing listener")

	if err := e.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%s shutdown: %w", e.name, err)
	}

	return nil
}
