package pinger

import (
	"context"
	"time"
)

// Pinger is a component whose liveness is checked periodically.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Optional pinger capabilities. A pinger without them is health and ready critical
// with the default timeout.
type readyCriticalPinger interface {
	PingerReadyCritical() bool
}

type healthCriticalPinger interface {
	PingerCritical() bool
}

type timeoutPinger interface {
	PingerTimeout() time.Duration
}
