package shutdown_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/clusterwatch/internal/infra/shutdown"
	"github.com/skillcoder/clusterwatch/internal/infra/shutdown/mocks"
)

type signalQuiter struct {
	ch chan os.Signal
}

func (q *signalQuiter) Quit() <-chan os.Signal {
	return q.ch
}

func TestCheckTerminationFile(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("file missing returns false", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nonexistent")

		require.False(t, shutdown.CheckTerminationFile(t.Context(), logger, path))
	})

	t.Run("empty path disables check", func(t *testing.T) {
		t.Parallel()

		require.False(t, shutdown.CheckTerminationFile(t.Context(), logger, ""))
	})

	t.Run("file exists returns true", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "terminating")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		require.True(t, shutdown.CheckTerminationFile(t.Context(), logger, path))
	})
}

func TestHandler_CheckTermination(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	path := filepath.Join(t.TempDir(), "terminating")
	h := shutdown.New(logger, &signalQuiter{}, path)

	require.NoError(t, h.CheckTermination(t.Context()))

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	require.ErrorIs(t, h.CheckTermination(t.Context()), shutdown.ErrTerminating)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	require.ErrorIs(t, h.CheckTermination(ctx), context.Canceled)
}

func TestHandler_HandleSignals(t *testing.T) {
	t.Parallel()

	q := &signalQuiter{ch: make(chan os.Signal, 1)}
	h := shutdown.New(slog.Default(), q, "")

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan struct{})

	go func() {
		defer close(done)
		h.HandleSignals(ctx, cancel)
	}()

	q.ch <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("signal handler did not return")
	}

	require.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestGracefulShutdown(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("empty list returns nil", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, shutdown.GracefulShutdown(t.Context(), logger, nil))
	})

	t.Run("one shutdowner error returns error", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).Return(context.DeadlineExceeded).Once()

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{m})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("shutdowners run in reverse order and all are attempted", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			order []string
		)

		record := func(name string) func(context.Context) error {
			return func(context.Context) error {
				mu.Lock()
				defer mu.Unlock()

				order = append(order, name)

				if name == "second" {
					return errors.New("boom")
				}

				return nil
			}
		}

		first := mocks.NewMockShutdowner(t)
		first.EXPECT().Name().Return("first").Once()
		first.EXPECT().Shutdown(mock.Anything).RunAndReturn(record("first")).Once()

		second := mocks.NewMockShutdowner(t)
		second.EXPECT().Name().Return("second").Once()
		second.EXPECT().Shutdown(mock.Anything).RunAndReturn(record("second")).Once()

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{first, second})
		require.ErrorContains(t, err, "shutdown second: boom")
		require.Equal(t, []string{"second", "first"}, order)
	})

	t.Run("cancelled origin context still shuts down", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(ctx context.Context) error {
			return ctx.Err()
		}).Once()

		require.NoError(t, shutdown.GracefulShutdown(ctx, logger, []shutdown.Shutdowner{m}))
	})
}
