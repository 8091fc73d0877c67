package watcher

import (
	"context"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/logic/resources"
)

// PVWatcher emits PVInfo once per volume, an EXPANSION event plus a fresh PVInfo
// when capacity grows, and a STOP event on delete.
type PVWatcher struct {
	emitter
	storage StorageClassLookup
	// volumes is only touched by the dispatcher goroutine.
	volumes map[string]volumeState
}

// volumeState tracks the capacity last sent in a PVInfo and in an EXPANSION event.
// They differ while a PVInfo after an expansion is still unsent.
type volumeState struct {
	info     int64
	expanded int64
}

func NewPVWatcher(
	logger *slog.Logger,
	errs ErrorLogger,
	publisher Publisher,
	details ClusterDetails,
	clk clock.PassiveClock,
	storage StorageClassLookup,
) *PVWatcher {
	return &PVWatcher{
		emitter:  newEmitter(logger, errs, publisher, details, clk, ProcessorPV),
		storage:  storage,
		volumes:  make(map[string]volumeState),
	}
}

func (w *PVWatcher) Handle(ctx context.Context, n Notification[*corev1.PersistentVolume]) {
	pv := n.Object
	if pv == nil {
		return
	}

	uid := string(pv.UID)

	switch n.Type {
	case EventAdded, EventUpdated:
		w.upsert(ctx, uid, pv)
	case EventDeleted:
		w.remove(ctx, uid, pv)
	}
}

func (w *PVWatcher) upsert(ctx context.Context, uid string, pv *corev1.PersistentVolume) {
	capacity := volumeCapacity(pv)

	if !w.published.Has(uid) {
		if !w.isNew(pv.CreationTimestamp.Time) {
			w.logger.DebugContext(ctx, "volume predates catch-up window, marking as seen", "volume", pv.Name)
			w.published.Insert(uid)
			w.volumes[uid] = volumeState{info: capacity, expanded: capacity}

			return
		}

		if w.publish(ctx, uid, w.info(ctx, pv, capacity), w.clock.Now()) {
			w.published.Insert(uid)
			w.volumes[uid] = volumeState{info: capacity, expanded: capacity}
		}

		return
	}

	state := w.volumes[uid]
	if capacity <= state.info {
		return
	}

	now := w.clock.Now()

	if capacity > state.expanded {
		w.logger.InfoContext(ctx, "volume expanded",
			"volume", pv.Name,
			"from", state.info,
			"to", capacity,
		)

		if !w.publish(ctx, uid, PVEvent{
			ClusterID: w.details.ClusterID,
			PVUID:     uid,
			EventType: PVEventExpansion,
			Capacity:  capacity,
			Timestamp: now,
		}, now) {
			return
		}

		state.expanded = capacity
		w.volumes[uid] = state
	}

	if w.publish(ctx, uid, w.info(ctx, pv, capacity), now) {
		state.info = capacity
		w.volumes[uid] = state
	}
}

func (w *PVWatcher) remove(ctx context.Context, uid string, pv *corev1.PersistentVolume) {
	var deleted *time.Time
	if pv.DeletionTimestamp != nil {
		deleted = &pv.DeletionTimestamp.Time
	}

	ts := w.terminalTime(deleted)
	w.publish(ctx, uid, PVEvent{
		ClusterID: w.details.ClusterID,
		PVUID:     uid,
		EventType: PVEventStop,
		Timestamp: ts,
	}, ts)

	w.published.Delete(uid)
	delete(w.volumes, uid)
}

func (w *PVWatcher) info(ctx context.Context, pv *corev1.PersistentVolume, capacity int64) PVInfo {
	params := map[string]string{}

	if class := pv.Spec.StorageClassName; class != "" {
		found, err := w.storage.StorageClassParameters(ctx, class)
		if err != nil {
			w.enrichmentFailed(ctx, "storageClassParams", err, "volume", pv.Name, "storageClass", class)
		} else if found != nil {
			params = found
		}
	}

	info := PVInfo{
		ClusterID:          w.details.ClusterID,
		PVUID:              string(pv.UID),
		PVName:             pv.Name,
		PVType:             volumeType(&pv.Spec.PersistentVolumeSource),
		StorageClass:       pv.Spec.StorageClassName,
		StorageClassParams: params,
		Capacity:           capacity,
		CreationTime:       pv.CreationTimestamp.Time,
	}

	if ref := pv.Spec.ClaimRef; ref != nil {
		info.ClaimName = ref.Name
		info.ClaimNamespace = ref.Namespace
	}

	return info
}

func volumeCapacity(pv *corev1.PersistentVolume) int64 {
	q, ok := pv.Spec.Capacity[corev1.ResourceStorage]
	if !ok {
		return 0
	}

	return resources.Storage(q.String())
}

// volumeType names the volume source; CSI volumes report their driver.
func volumeType(src *corev1.PersistentVolumeSource) string {
	switch {
	case src.CSI != nil:
		return src.CSI.Driver
	case src.AWSElasticBlockStore != nil:
		return "awsElasticBlockStore"
	case src.GCEPersistentDisk != nil:
		return "gcePersistentDisk"
	case src.AzureDisk != nil:
		return "azureDisk"
	case src.AzureFile != nil:
		return "azureFile"
	case src.NFS != nil:
		return "nfs"
	case src.HostPath != nil:
		return "hostPath"
	case src.Local != nil:
		return "local"
	case src.ISCSI != nil:
		return "iscsi"
	case src.FC != nil:
		return "fc"
	case src.CephFS != nil:
		return "cephfs"
	case src.RBD != nil:
		return "rbd"
	default:
		return "unknown"
	}
}
