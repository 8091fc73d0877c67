package app

import (
	"context"

	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

type appstater interface {
	RegisterPinger(p pinger.Pinger) error
	RegisterShutdowner(s shutdown.Shutdowner)
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type signalHandler interface {
	HandleSignals(ctx context.Context, cancel func())
	CheckTermination(ctx context.Context) error
}

// component is a long-running part of the process.
type component interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

// publisher is the outbound transport chosen at startup.
type publisher interface {
	watcher.Publisher
	shutdown.Shutdowner
}

type starter interface {
	Start(ctx context.Context) error
}
