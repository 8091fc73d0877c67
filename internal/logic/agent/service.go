// Package agent drives the watch lifecycle in-process: it re-runs the idempotent
// watch create on a fixed interval and emits cluster snapshots on a cron cadence.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

type Service struct {
	logger        *slog.Logger
	manager       WatchManager
	parser        ScheduleParser
	clock         clock.WithTicker
	details       watcher.ClusterDetails
	connection    []byte
	interval      time.Duration
	schedule      string
	tz            string
	ready         chan struct{}
	doneCh        chan struct{}
	inShutdown    atomic.Bool
	mu            sync.RWMutex
	lastRunOK     time.Time
	lastSnapshot  time.Time
	nextSnapshot  time.Time
	lastRunErr    error
	snapshotsSent int
}

// New creates a new agent service.
func New(
	logger *slog.Logger,
	manager WatchManager,
	parser ScheduleParser,
	clk clock.WithTicker,
	details watcher.ClusterDetails,
	connection []byte,
	interval time.Duration,
	schedule,
	tz string,
) *Service {
	return &Service{
		logger:     logger.With("component", "agent", "cluster", details.ClusterID),
		manager:    manager,
		parser:     parser,
		clock:      clk,
		details:    details,
		connection: connection,
		interval:   interval,
		schedule:   schedule,
		tz:         tz,
		ready:      make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "agent is shutting down, skipping start")

		return nil
	}

	go s.RunCommand(ctx)

	return nil
}

// Name returns the name of the component
func (s *Service) Name() string {
	return "agent"
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Ping fails until the first successful run and when the last one is older than two intervals.
func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
		s.mu.RLock()
		lastRunOK, lastErr := s.lastRunOK, s.lastRunErr
		s.mu.RUnlock()

		if lastRunOK.IsZero() {
			if lastErr != nil {
				return fmt.Errorf("%w: %w", ErrNotReady, lastErr)
			}

			return ErrNotReady
		}

		if age := s.clock.Since(lastRunOK); age > 2*s.interval {
			return fmt.Errorf("%w: %s", ErrStaleRun, age.Round(time.Second))
		}

		return nil
	default:
		return ErrNotReady
	}
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "agent is already shutting down, skipping shutdown")

		return nil
	}

	s.logger.InfoContext(ctx, "shutting down agent")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before agent loop exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "agent loop exited")
	}

	return nil
}

// RunOnceCommand makes sure the cluster watch exists. Repeated calls are no-ops
// while the watch is live.
func (s *Service) RunOnceCommand(ctx context.Context) error {
	id, err := s.manager.Create(ctx, s.details, s.connection)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRunErr = err
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateWatch, err)
	}

	s.lastRunOK = s.clock.Now()
	s.logger.DebugContext(ctx, "watch is live", "watchId", id)

	return nil
}

// SnapshotCommand emits one snapshot for every live watch.
func (s *Service) SnapshotCommand(ctx context.Context) error {
	err := s.manager.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	s.mu.Lock()
	s.lastSnapshot = s.clock.Now()
	s.snapshotsSent++
	s.mu.Unlock()

	return nil
}

// Status reports the loop state for the status endpoint.
func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		ClusterID:     s.details.ClusterID,
		LastRunOK:     s.lastRunOK,
		LastSnapshot:  s.lastSnapshot,
		NextSnapshot:  s.nextSnapshot,
		SnapshotsSent: s.snapshotsSent,
	}

	if s.lastRunErr != nil {
		status.LastError = s.lastRunErr.Error()
	}

	return status
}

// RunCommand runs the agent loop until ctx is done.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	logger := s.logger.With("agent", "RunCommand")

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	snapshotTimer := s.scheduleSnapshot(ctx)
	defer snapshotTimer.Stop()

	err := s.RunOnceCommand(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "run once error", "reason", err)
	}

	close(s.ready)

	for {
		select {
		case <-ticker.C():
			err := s.RunOnceCommand(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "run once error", "reason", err)
			}
		case <-snapshotTimer.C():
			err := s.SnapshotCommand(ctx)
			if err != nil {
				logger.ErrorContext(ctx, "snapshot error", "reason", err)
			}

			snapshotTimer.Stop()
			snapshotTimer = s.scheduleSnapshot(ctx)
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating agent loop")

			return
		}
	}
}

// scheduleSnapshot arms a timer for the next snapshot. A bad schedule disables
// snapshots with a timer that never fires.
func (s *Service) scheduleSnapshot(ctx context.Context) clock.Timer {
	now := s.clock.Now()

	next, err := s.parser.NextAfter(s.schedule, s.tz, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "snapshots disabled",
			"schedule", s.schedule,
			"reason", fmt.Errorf("%w: %w", ErrNextSnapshot, err),
		)

		timer := s.clock.NewTimer(time.Hour)
		timer.Stop()

		return timer
	}

	s.mu.Lock()
	s.nextSnapshot = next
	s.mu.Unlock()

	return s.clock.NewTimer(next.Sub(now))
}
