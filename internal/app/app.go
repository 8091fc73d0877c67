package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/adapters/outbound/k8s"
	"github.com/skillcoder/clusterwatch/internal/adapters/outbound/kafka"
	"github.com/skillcoder/clusterwatch/internal/adapters/outbound/logsink"
	"github.com/skillcoder/clusterwatch/internal/config"
	"github.com/skillcoder/clusterwatch/internal/httpserver"
	"github.com/skillcoder/clusterwatch/internal/infra/appstate"
	"github.com/skillcoder/clusterwatch/internal/infra/cronparser"
	"github.com/skillcoder/clusterwatch/internal/infra/logging"
	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
	"github.com/skillcoder/clusterwatch/internal/logic/agent"
	"github.com/skillcoder/clusterwatch/internal/logic/lifecycle"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

type App struct {
	logger     *slog.Logger
	appState   appstater
	signals    signalHandler
	publisher  publisher
	components []component
}

// New wires every dependency. Nothing is started until Run.
func New(
	logger *slog.Logger,
	cfg *config.Config,
	appState *appstate.AppState,
	pingers *pinger.Service,
) (*App, error) {
	baseConfig, err := k8s.BuildConfig(cfg.KubeMaster, cfg.KubeConfig)
	if err != nil {
		return nil, err
	}

	connection, err := readConnection(cfg.ConnectionFile)
	if err != nil {
		return nil, err
	}

	parser := cronparser.New()
	if err := parser.Validate(cfg.SnapshotSchedule, cfg.SnapshotTZ); err != nil {
		return nil, fmt.Errorf("snapshot schedule: %w", err)
	}

	pub, err := newPublisher(logger, cfg)
	if err != nil {
		return nil, err
	}

	realClock := clock.RealClock{}
	connector := k8s.NewConnector(logger, baseConfig, cfg.ResyncPeriod, cfg.WatchTimeout)
	manager := lifecycle.New(
		logger,
		logging.NewDeduper(logger),
		connector,
		pub,
		realClock,
		cfg.QueueSize,
	)

	details := watcher.ClusterDetails{
		ClusterID:       cfg.ClusterID,
		CloudProviderID: cfg.CloudProviderID,
		ClusterName:     cfg.ClusterName,
		IsSeen:          cfg.ClusterSeen,
	}

	agentService := agent.New(
		logger,
		manager,
		parser,
		realClock,
		details,
		connection,
		cfg.Interval,
		cfg.SnapshotSchedule,
		cfg.SnapshotTZ,
	)

	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort)
	httpServer := httpserver.New(logger, appState, manager, agentService, cfg.HTTPPort)

	for _, p := range []pinger.Pinger{metricsServer, httpServer, agentService} {
		if err := appState.RegisterPinger(p); err != nil {
			return nil, fmt.Errorf("register pinger: %w", err)
		}
	}

	if p, ok := pub.(pinger.Pinger); ok {
		if err := appState.RegisterPinger(p); err != nil {
			return nil, fmt.Errorf("register pinger: %w", err)
		}
	}

	// shutdown runs in reverse: agent, watches, publisher, pinger, servers
	appState.RegisterShutdowner(metricsServer)
	appState.RegisterShutdowner(httpServer)
	appState.RegisterShutdowner(pingers)
	appState.RegisterShutdowner(pub)
	appState.RegisterShutdowner(manager)
	appState.RegisterShutdowner(agentService)

	return &App{
		logger:     logger,
		appState:   appState,
		signals:    shutdown.New(logger, appState, cfg.TerminationFile),
		publisher:  pub,
		components: []component{metricsServer, httpServer, agentService, pingers},
	}, nil
}

// Run starts every component and blocks until a termination signal, then shuts down.
func (a *App) Run(originCtx context.Context) error {
	err := a.signals.CheckTermination(originCtx)
	if err != nil {
		return fmt.Errorf("check termination: %w", err)
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	go a.signals.HandleSignals(ctx, cancel)

	if err := a.appState.SetStarting(ctx); err != nil {
		return fmt.Errorf("set starting: %w", err)
	}

	if s, ok := a.publisher.(starter); ok {
		if err := s.Start(ctx); err != nil {
			return a.abort(ctx, fmt.Errorf("start %s: %w", a.publisher.Name(), err))
		}
	}

	readies := make([]<-chan struct{}, 0, len(a.components))

	for _, c := range a.components {
		if err := c.Start(ctx); err != nil {
			return a.abort(ctx, fmt.Errorf("start %s: %w", c.Name(), err))
		}

		readies = append(readies, c.Ready())
	}

	<-allChannelsClose(ctx, a.logger, readies...)

	if ctx.Err() == nil {
		if err := a.appState.SetRunning(ctx); err != nil {
			return a.abort(ctx, fmt.Errorf("set running: %w", err))
		}

		a.logger.InfoContext(ctx, "clusterwatch started")

		<-ctx.Done()
	}

	a.logger.InfoContext(ctx, "shutting down")

	return a.appState.Shutdown(ctx)
}

func (a *App) abort(ctx context.Context, err error) error {
	if shutdownErr := a.appState.Shutdown(ctx); shutdownErr != nil {
		a.logger.ErrorContext(ctx, "shutdown after failed start", "reason", shutdownErr)
	}

	return err
}

func newPublisher(logger *slog.Logger, cfg *config.Config) (publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("no kafka brokers configured, records go to the log")

		return logsink.New(logger, slog.LevelInfo), nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaClientID)
	if err != nil {
		return nil, err
	}

	return kafka.New(logger, producer, cfg.KafkaTopic), nil
}

func readConnection(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read connection file: %w", err)
	}

	return data, nil
}

// allChannelsClose returns a channel closed once every input is closed or ctx is done.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	var wg sync.WaitGroup

	for _, ch := range chans {
		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case <-ch:
			case <-ctx.Done():
			}
		}()
	}

	go func() {
		wg.Wait()

		if ctx.Err() != nil {
			logger.InfoContext(ctx, "stopped waiting for components", "reason", ctx.Err())
		}

		close(out)
	}()

	return out
}
