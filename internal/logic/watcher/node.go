package watcher

import (
	"context"
	"log/slog"
	"maps"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/logic/resources"
)

// NodeWatcher emits NodeInfo once per node, again when allocatable changes,
// and a STOP event on delete.
type NodeWatcher struct {
	emitter
	// allocatable is only touched by the dispatcher goroutine.
	allocatable map[string]resources.List
}

func NewNodeWatcher(
	logger *slog.Logger,
	errs ErrorLogger,
	publisher Publisher,
	details ClusterDetails,
	clk clock.PassiveClock,
) *NodeWatcher {
	return &NodeWatcher{
		emitter:     newEmitter(logger, errs, publisher, details, clk, ProcessorNode),
		allocatable: make(map[string]resources.List),
	}
}

func (w *NodeWatcher) Handle(ctx context.Context, n Notification[*corev1.Node]) {
	node := n.Object
	if node == nil {
		return
	}

	uid := string(node.UID)

	switch n.Type {
	case EventAdded, EventUpdated:
		w.upsert(ctx, uid, node)
	case EventDeleted:
		w.remove(ctx, uid, node)
	}
}

func (w *NodeWatcher) upsert(ctx context.Context, uid string, node *corev1.Node) {
	allocatable := resources.FromResourceList(node.Status.Allocatable)

	if w.published.Has(uid) {
		if maps.Equal(w.allocatable[uid], allocatable) {
			return
		}

		w.logger.InfoContext(ctx, "node allocatable changed", "node", node.Name)
	} else if !w.isNew(node.CreationTimestamp.Time) {
		w.logger.DebugContext(ctx, "node predates catch-up window, marking as seen", "node", node.Name)
		w.published.Insert(uid)
		w.allocatable[uid] = allocatable

		return
	}

	if !w.publish(ctx, uid, w.info(node, allocatable), w.clock.Now()) {
		return
	}

	w.published.Insert(uid)
	w.allocatable[uid] = allocatable
}

func (w *NodeWatcher) remove(ctx context.Context, uid string, node *corev1.Node) {
	var deleted *time.Time
	if node.DeletionTimestamp != nil {
		deleted = &node.DeletionTimestamp.Time
	}

	ts := w.terminalTime(deleted)
	w.publish(ctx, uid, NodeEvent{
		ClusterID: w.details.ClusterID,
		NodeUID:   uid,
		NodeName:  node.Name,
		Type:      NodeEventStop,
		Timestamp: ts,
	}, ts)

	w.published.Delete(uid)
	delete(w.allocatable, uid)
}

func (w *NodeWatcher) info(node *corev1.Node, allocatable resources.List) NodeInfo {
	return NodeInfo{
		ClusterID:    w.details.ClusterID,
		NodeUID:      string(node.UID),
		NodeName:     node.Name,
		CreationTime: node.CreationTimestamp.Time,
		ProviderID:   node.Spec.ProviderID,
		Labels:       node.Labels,
		Allocatable:  resources.Bounded(allocatable),
		Capacity:     resources.FromResourceList(node.Status.Capacity),
	}
}
