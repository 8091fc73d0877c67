package agent

import (
	"context"
	"time"

	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// WatchManager is the port to the watch lifecycle.
type WatchManager interface {
	Create(
		ctx context.Context,
		details watcher.ClusterDetails,
		connection []byte,
	) (string, error)

	Snapshot(ctx context.Context) error
}

// ScheduleParser computes the next occurrence of a cron schedule.
type ScheduleParser interface {
	NextAfter(
		spec,
		tz string,
		after time.Time,
	) (time.Time, error)
}
