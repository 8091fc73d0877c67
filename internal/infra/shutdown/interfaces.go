package shutdown

import (
	"context"
	"os"
)

// Shutdowner is a named component that releases its resources on Shutdown.
type Shutdowner interface {
	Name() string
	Shutdown(ctx context.Context) error
}

// signalSource exposes the process quit channel.
type signalSource interface {
	Quit() <-chan os.Signal
}
