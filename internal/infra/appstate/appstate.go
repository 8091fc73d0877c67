// Package appstate tracks the process lifecycle and aggregates component health.
package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/infra/pinger"
	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
)

// State represents the application state
type State string

const (
	StateInit        State = "init"
	StateStarting    State = "starting"
	StateRunning     State = "running"
	StateTerminating State = "terminating"
	StateTerminated  State = "terminated"
)

const defaultShutdownersCount = 10

// AppState manages the application state with thread-safe operations
type AppState struct {
	mu              sync.RWMutex
	logger          *slog.Logger
	clock           clock.PassiveClock
	startedAt       time.Time
	readyAt         *time.Time
	terminatingAt   *time.Time
	state           State
	quit            <-chan os.Signal
	terminationFile string
	pingers         pingerServer
	shutdowners     []shutdown.Shutdowner
}

// New creates a new AppState. terminationFile is re-checked once the application is running.
func New(
	logger *slog.Logger,
	clk clock.PassiveClock,
	appStart time.Time,
	terminationFile string,
	quit <-chan os.Signal,
	pingers pingerServer,
) *AppState {
	return &AppState{
		logger:          logger.With("component", "appstate"),
		clock:           clk,
		startedAt:       appStart,
		state:           StateInit,
		quit:            quit,
		terminationFile: terminationFile,
		pingers:         pingers,
		shutdowners:     make([]shutdown.Shutdowner, 0, defaultShutdownersCount),
	}
}

func (s *AppState) RegisterPinger(p pinger.Pinger) error {
	return s.pingers.Register(p)
}

// RegisterShutdowner appends a component. Components shut down in reverse order.
func (s *AppState) RegisterShutdowner(shutdowner shutdown.Shutdowner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdowners = append(s.shutdowners, shutdowner)
}

// PingerStatuses returns the last status of every registered pinger.
func (s *AppState) PingerStatuses() map[string]pinger.Status {
	return s.pingers.Statuses()
}

// SetStarting transitions the state from Init to Starting
func (s *AppState) SetStarting(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit {
		return fmt.Errorf("set starting from %s: %w", s.state, ErrInvalidStateTransition)
	}

	return s.setState(StateStarting)
}

// SetRunning transitions the state from Starting to Running. A termination file that
// appeared during startup turns into a SIGTERM to ourselves.
func (s *AppState) SetRunning(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarting {
		return fmt.Errorf("set running from %s: %w", s.state, ErrInvalidStateTransition)
	}

	now := s.clock.Now()
	s.readyAt = &now

	if err := s.setState(StateRunning); err != nil {
		return err
	}

	if shutdown.CheckTerminationFile(ctx, s.logger, s.terminationFile) {
		pid := os.Getpid()
		s.logger.InfoContext(ctx, "termination file found after initialization, sending SIGTERM", "pid", pid)

		if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
			s.logger.ErrorContext(ctx, "failed to send SIGTERM", "reason", err, "pid", pid)
		}
	}

	return nil
}

// SetTerminating transitions the state to Terminating
func (s *AppState) SetTerminating(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return fmt.Errorf("set terminating: %w", ErrAlreadyTerminated)
	}

	now := s.clock.Now()
	s.terminatingAt = &now

	return s.setState(StateTerminating)
}

func (s *AppState) setState(newState State) error {
	if s.state == StateTerminated {
		return fmt.Errorf("set state %s: %w", newState, ErrAlreadyTerminated)
	}

	s.logger.Info("application state changed", "from", s.state, "to", newState)
	s.state = newState

	return nil
}

func (s *AppState) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *AppState) GetStartTime() time.Time {
	return s.startedAt
}

func (s *AppState) GetUptime() time.Duration {
	return s.clock.Since(s.startedAt)
}

// IsHealthy is true while running and no health critical pinger is failing.
func (s *AppState) IsHealthy() bool {
	s.mu.RLock()
	running := s.state == StateRunning
	s.mu.RUnlock()

	return running && s.pingers.Healthy()
}

// IsReady is true while running and every ready critical pinger passed its last ping.
func (s *AppState) IsReady() bool {
	s.mu.RLock()
	ready := s.state == StateRunning && s.readyAt != nil
	s.mu.RUnlock()

	return ready && s.pingers.ReadyOK()
}

// Quit returns the channel that will receive the signal when shutdown is requested
func (s *AppState) Quit() <-chan os.Signal {
	return s.quit
}

var _ shutdown.Shutdowner = (*AppState)(nil)

func (s *AppState) Name() string {
	return "appstate"
}

// Shutdown stops every registered component and moves to Terminated. Repeated calls are no-ops.
func (s *AppState) Shutdown(ctx context.Context) error {
	if s.GetState() == StateTerminated {
		return nil
	}

	if err := s.SetTerminating(ctx); err != nil {
		return fmt.Errorf("set terminating application state: %w", err)
	}

	s.mu.RLock()
	shutdowners := append([]shutdown.Shutdowner(nil), s.shutdowners...)
	s.mu.RUnlock()

	shutdownErr := shutdown.GracefulShutdown(ctx, s.logger, shutdowners)

	s.mu.Lock()
	s.state = StateTerminated
	s.mu.Unlock()

	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	return nil
}
