package lifecycle

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/skillcoder/clusterwatch/internal/infra/metrics"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// snapshot lists live nodes, pods and volumes concurrently. A volume listing failure
// is tolerated with an empty list; node or pod failures abort this attempt.
func (m *Manager) snapshot(ctx context.Context, h *WatchHandle) error {
	var nodeUIDs, podUIDs, pvUIDs []string

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		uids, err := h.cluster.ListNodeUIDs(gctx)
		if err != nil {
			return fmt.Errorf("list nodes: %w", err)
		}

		nodeUIDs = uids

		return nil
	})

	g.Go(func() error {
		uids, err := h.cluster.ListPodUIDs(gctx)
		if err != nil {
			return fmt.Errorf("list pods: %w", err)
		}

		podUIDs = uids

		return nil
	})

	g.Go(func() error {
		uids, err := h.cluster.ListPersistentVolumeUIDs(gctx)
		if err != nil {
			m.logger.WarnContext(ctx, "list persistent volumes failed, sending empty list",
				"cluster", h.ID,
				"reason", err,
			)

			uids = []string{}
		}

		pvUIDs = uids

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrSnapshot, h.ID, err)
	}

	now := m.clock.Now()
	record := watcher.ClusterSync{
		ClusterID:     h.ID,
		ClusterName:   h.Details.ClusterName,
		KubeSystemUID: h.Details.KubeSystemUID,
		NodeUIDs:      nodeUIDs,
		PodUIDs:       podUIDs,
		PVUIDs:        pvUIDs,
		Timestamp:     now,
	}

	attrs := map[string]string{watcher.AttrClusterID: h.ID}

	err := m.publisher.Publish(ctx, record, now, attrs, watcher.ProcessorSync)
	if err != nil {
		metrics.RecordPublishError(string(record.RecordType()))

		return fmt.Errorf("%w %s: publish: %w", ErrSnapshot, h.ID, err)
	}

	metrics.RecordPublished(string(record.RecordType()))

	m.logger.InfoContext(ctx, "cluster snapshot sent",
		"cluster", h.ID,
		"nodes", len(nodeUIDs),
		"pods", len(podUIDs),
		"volumes", len(pvUIDs),
	)

	return nil
}
