// Package lifecycle owns the set of live cluster watches.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/infra/metrics"
	"github.com/skillcoder/clusterwatch/internal/logic/lookup"
	"github.com/skillcoder/clusterwatch/internal/logic/owner"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// Manager creates and deletes cluster watches. Create and Delete are idempotent
// and safe for concurrent use.
type Manager struct {
	logger     *slog.Logger
	errs       watcher.ErrorLogger
	connector  Connector
	publisher  watcher.Publisher
	clock      clock.Clock
	queueSize  int
	syncWait   time.Duration
	watches    sync.Map // watch id -> *WatchHandle
	creating   singleflight.Group
	inShutdown atomic.Bool
}

// New creates a lifecycle manager.
func New(
	logger *slog.Logger,
	errs watcher.ErrorLogger,
	connector Connector,
	publisher watcher.Publisher,
	clk clock.Clock,
	queueSize int,
) *Manager {
	return &Manager{
		logger:    logger.With("component", "lifecycle"),
		errs:      errs,
		connector: connector,
		publisher: publisher,
		clock:     clk,
		queueSize: queueSize,
		syncWait:  sideCacheSyncAttempts * sideCacheSyncInterval,
	}
}

// Name returns the name of the component
func (m *Manager) Name() string {
	return "watch-lifecycle"
}

// Create starts a watch for details.ClusterID unless one is already live, and returns
// the watch id. It blocks while the side caches sync, for a bounded time. Concurrent
// calls for one cluster share a single start.
func (m *Manager) Create(ctx context.Context, details watcher.ClusterDetails, connection []byte) (string, error) {
	id := details.ClusterID
	if id == "" {
		return "", ErrEmptyClusterID
	}

	if m.inShutdown.Load() {
		return "", ErrShuttingDown
	}

	if _, ok := m.watches.Load(id); ok {
		return id, nil
	}

	result := m.creating.DoChan(id, func() (any, error) {
		return nil, m.create(ctx, details, connection)
	})

	select {
	case res := <-result:
		if res.Err != nil {
			return "", res.Err
		}

		return id, nil
	case <-ctx.Done():
		return "", fmt.Errorf("create watch %s: %w", id, ctx.Err())
	}
}

// create runs under the per-cluster singleflight key, so the handle it stores is the only one.
func (m *Manager) create(ctx context.Context, details watcher.ClusterDetails, connection []byte) error {
	id := details.ClusterID

	if _, ok := m.watches.Load(id); ok {
		return nil
	}

	logger := m.logger.With("cluster", id)

	cluster, err := m.connector.Connect(ctx, connection)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrConnect, id, err)
	}

	handle, err := m.start(ctx, logger, details, cluster)
	if err != nil {
		cluster.Stop()

		return fmt.Errorf("%w %s: %w", ErrStartWatch, id, err)
	}

	m.watches.Store(id, handle)

	// Shutdown may have walked the map before the store above.
	if m.inShutdown.Load() {
		m.Delete(ctx, id)

		return ErrShuttingDown
	}

	metrics.SetActiveWatches(m.count())
	logger.InfoContext(ctx, "watch created",
		"clusterName", details.ClusterName,
		"isSeen", details.IsSeen,
	)

	return nil
}

// Delete stops and removes a watch. It reports false when no such watch exists.
func (m *Manager) Delete(ctx context.Context, id string) bool {
	value, ok := m.watches.LoadAndDelete(id)
	if !ok {
		return false
	}

	value.(*WatchHandle).stop()
	metrics.SetActiveWatches(m.count())
	m.logger.InfoContext(ctx, "watch deleted", "cluster", id)

	return true
}

// Get returns a live watch.
func (m *Manager) Get(id string) (*WatchHandle, bool) {
	value, ok := m.watches.Load(id)
	if !ok {
		return nil, false
	}

	return value.(*WatchHandle), true
}

// Watches lists live watches ordered by id.
func (m *Manager) Watches() []WatchInfo {
	var out []WatchInfo

	m.watches.Range(func(_, value any) bool {
		out = append(out, value.(*WatchHandle).Info())

		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].WatchID < out[j].WatchID })

	return out
}

// Shutdown deletes every watch.
func (m *Manager) Shutdown(ctx context.Context) error {
	if !m.inShutdown.CompareAndSwap(false, true) {
		return nil
	}

	m.logger.InfoContext(ctx, "stopping all watches")

	m.watches.Range(func(key, _ any) bool {
		m.Delete(ctx, key.(string))

		return true
	})

	return nil
}

func (m *Manager) count() int {
	n := 0

	m.watches.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

func (m *Manager) start(
	ctx context.Context,
	logger *slog.Logger,
	details watcher.ClusterDetails,
	cluster Cluster,
) (*WatchHandle, error) {
	// The watch outlives the request that created it.
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	if details.KubeSystemUID == "" {
		uid, err := cluster.KubeSystemUID(ctx)
		if err != nil {
			logger.WarnContext(ctx, "kube-system namespace uid unavailable", "reason", err)
		}

		details.KubeSystemUID = uid
	}

	m.waitForSideCaches(ctx, logger, cluster.StartSideCaches(watchCtx))

	lookups := lookup.New(logger, cluster, cluster)
	resolver := owner.NewResolver(logger, m.errs, cluster, cluster, cluster)

	handle := &WatchHandle{
		ID:        details.ClusterID,
		Details:   details,
		StartedAt: m.clock.Now(),
		cluster:   cluster,
		cancel:    cancel,
		resolver:  resolver,
		nodes:     watcher.NewNodeWatcher(logger, m.errs, m.publisher, details, m.clock),
		volumes:   watcher.NewPVWatcher(logger, m.errs, m.publisher, details, m.clock, lookups),
		pods: watcher.NewPodWatcher(
			logger,
			m.errs,
			m.publisher,
			details,
			m.clock,
			resolver,
			lookups,
			lookups,
		),
	}

	nodes := watcher.NewDispatcher[*corev1.Node](logger, kindNode, m.queueSize, handle.nodes)
	volumes := watcher.NewDispatcher[*corev1.PersistentVolume](logger, kindPV, m.queueSize, handle.volumes)
	pods := watcher.NewDispatcher[*corev1.Pod](logger, kindPod, m.queueSize, handle.pods)

	go nodes.Run(watchCtx)
	go volumes.Run(watchCtx)
	go pods.Run(watchCtx)

	// Nodes and volumes do not depend on the side caches; pods go last.
	err := cluster.WatchNodes(watchCtx, nodes)
	if err == nil {
		err = cluster.WatchPersistentVolumes(watchCtx, volumes)
	}

	if err == nil {
		err = cluster.WatchPods(watchCtx, pods)
	}

	if err != nil {
		cancel()

		return nil, err
	}

	return handle, nil
}

// waitForSideCaches polls the sync checks for a bounded time and proceeds either way:
// lookups fall back to the live API until the mirrors catch up.
func (m *Manager) waitForSideCaches(ctx context.Context, logger *slog.Logger, synced []func() bool) {
	err := wait.PollUntilContextTimeout(ctx, sideCacheSyncInterval, m.syncWait, true,
		func(context.Context) (bool, error) {
			for _, ok := range synced {
				if !ok() {
					return false, nil
				}
			}

			return true, nil
		},
	)
	if err != nil {
		logger.WarnContext(ctx, "side caches not synced in time, proceeding", "reason", err)

		return
	}

	logger.DebugContext(ctx, "side caches synced")
}

// Snapshot emits a ClusterSync record for every live watch. A failed cluster does not
// stop the others; the joined error reports every failure.
func (m *Manager) Snapshot(ctx context.Context) error {
	var errs []error

	m.watches.Range(func(_, value any) bool {
		if err := m.snapshot(ctx, value.(*WatchHandle)); err != nil {
			metrics.RecordSnapshotFailure()
			errs = append(errs, err)
		}

		return true
	})

	return errors.Join(errs...)
}
