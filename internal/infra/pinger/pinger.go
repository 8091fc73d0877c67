package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
)

const defaultPingTimeout = time.Second

// Service pings registered components on an interval and keeps their last status.
type Service struct {
	logger     *slog.Logger
	clock      clock.WithTicker
	interval   time.Duration
	mu         sync.RWMutex
	entries    map[string]*entry
	ready      chan struct{}
	inShutdown atomic.Bool
	doneCh     chan struct{}
	wg         sync.WaitGroup
}

// New creates a new pinger service with the specified interval
func New(
	logger *slog.Logger,
	interval time.Duration,
	clk clock.WithTicker,
) *Service {
	return &Service{
		logger:   logger.With("component", "pinger"),
		clock:    clk,
		interval: interval,
		entries:  make(map[string]*entry),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

var _ shutdown.Shutdowner = (*Service)(nil)

func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds p. Names must be unique.
func (s *Service) Register(p Pinger) error {
	if p == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := p.Name()
	e := &entry{
		pinger:  p,
		timeout: defaultPingTimeout,
		status: Status{
			ReadyCritical:  true,
			HealthCritical: true,
		},
	}

	if rc, ok := p.(readyCriticalPinger); ok {
		e.status.ReadyCritical = rc.PingerReadyCritical()
	}

	if hc, ok := p.(healthCriticalPinger); ok {
		e.status.HealthCritical = hc.PingerCritical()
	}

	if tp, ok := p.(timeoutPinger); ok && tp.PingerTimeout() > 0 {
		e.timeout = tp.PingerTimeout()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	s.entries[name] = e

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", e.status.ReadyCritical,
		"healthCritical", e.status.HealthCritical,
		"timeout", e.timeout,
	)

	return nil
}

func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	go s.run(ctx)

	return nil
}

// Ready is closed after the first round of pings.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	s.logger.InfoContext(ctx, "shutting down pinger service")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
	}

	s.wg.Wait()

	s.logger.InfoContext(ctx, "pinger loop stopped")

	return nil
}

// Statuses returns a copy of every pinger status keyed by name.
func (s *Service) Statuses() map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Status, len(s.entries))
	for name, e := range s.entries {
		out[name] = e.status
	}

	return out
}

// Healthy is false when a health critical pinger failed its last ping.
// Pingers that have not run yet count as healthy.
func (s *Service) Healthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.status.HealthCritical && e.status.LastError != "" {
			return false
		}
	}

	return true
}

// ReadyOK is true once every ready critical pinger has succeeded on its last ping.
func (s *Service) ReadyOK() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.status.ReadyCritical && !e.status.ok() {
			return false
		}
	}

	return true
}

// PingAll runs one round of pings and waits for it.
func (s *Service) PingAll(ctx context.Context) {
	s.mu.RLock()
	round := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		round = append(round, e)
	}
	s.mu.RUnlock()

	var wg sync.WaitGroup

	for _, e := range round {
		wg.Add(1)
		s.wg.Add(1)

		go func() {
			defer wg.Done()
			defer s.wg.Done()

			s.ping(ctx, e)
		}()
	}

	wg.Wait()
}

func (s *Service) ping(ctx context.Context, e *entry) {
	pingCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := s.clock.Now()
	err := e.pinger.Ping(pingCtx)
	latency := s.clock.Since(start)

	s.mu.Lock()
	e.status.LastRun = start
	e.status.LastLatency = latency

	if err != nil {
		e.status.LastError = err.Error()
		e.status.Failures++
	} else {
		e.status.LastError = ""
		e.status.Successes++
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.DebugContext(ctx, "pinger error",
			"name", e.pinger.Name(),
			"latency", latency,
			"reason", err,
		)
	}
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	s.PingAll(ctx)
	close(s.ready)

	for {
		if s.inShutdown.Load() {
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		}

		select {
		case <-ticker.C():
			s.PingAll(ctx)
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		}
	}
}
