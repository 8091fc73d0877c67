package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/app"
	"github.com/skillcoder/clusterwatch/internal/config"
	"github.com/skillcoder/clusterwatch/internal/infra/appstate"
	"github.com/skillcoder/clusterwatch/internal/infra/logging"
	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

const exitFlushDelay = 500 * time.Millisecond

func main() {
	startedAt := time.Now()
	// subscribe before anything else so an early SIGTERM is not lost
	quit := shutdown.Notify()

	ctx := context.Background()

	if err := run(ctx, quit, startedAt); err != nil {
		slog.ErrorContext(ctx, "clusterwatch exited with error", "reason", err)
		time.Sleep(exitFlushDelay)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "clusterwatch stopped")
}

func run(ctx context.Context, quit <-chan os.Signal, startedAt time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	logger.InfoContext(ctx, "starting clusterwatch",
		"version", buildVersion(),
		"cluster", cfg.ClusterID,
	)

	clk := clock.RealClock{}
	pingers := pinger.New(logger, cfg.PingerInterval, clk)
	state := appstate.New(logger, clk, startedAt, cfg.TerminationFile, quit, pingers)

	application, err := app.New(logger, cfg, state, pingers)
	if err != nil {
		return fmt.Errorf("wire application: %w", err)
	}

	return application.Run(ctx)
}

func buildVersion() string {
	if version != "dev" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return version
}
