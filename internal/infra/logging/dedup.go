package logging

import (
	"context"
	"log/slog"
	"time"

	utilcache "k8s.io/apimachinery/pkg/util/cache"
	"k8s.io/utils/clock"
)

const (
	// DefaultDedupWindow is how long an identical error message stays muted.
	DefaultDedupWindow = 10 * time.Minute

	dedupCapacity = 1024
)

// Deduper logs transient upstream errors, muting repeats of the same message
// for the configured window.
type Deduper struct {
	logger *slog.Logger
	window time.Duration
	seen   *utilcache.LRUExpireCache
}

// NewDeduper creates a Deduper with the default window.
func NewDeduper(logger *slog.Logger) *Deduper {
	return NewDeduperWithClock(logger, DefaultDedupWindow, clock.RealClock{})
}

// NewDeduperWithClock creates a Deduper with a custom window and clock.
func NewDeduperWithClock(logger *slog.Logger, window time.Duration, clk clock.PassiveClock) *Deduper {
	return &Deduper{
		logger: logger,
		window: window,
		seen:   utilcache.NewLRUExpireCacheWithClock(dedupCapacity, clk),
	}
}

// Error logs msg with err at error level unless the same msg and error text were
// logged within the window. It reports whether the line was written.
func (d *Deduper) Error(ctx context.Context, msg string, err error, args ...any) bool {
	key := msg
	if err != nil {
		key = msg + ": " + err.Error()
	}

	if _, ok := d.seen.Get(key); ok {
		return false
	}

	d.seen.Add(key, struct{}{}, d.window)

	d.logger.ErrorContext(ctx, msg, append(args, "reason", err)...)

	return true
}
