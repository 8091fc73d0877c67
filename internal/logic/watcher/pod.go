package watcher

import (
	"context"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/clock"

	"github.com/skillcoder/clusterwatch/internal/logic/resources"
)

// PodWatcher emits PodInfo once a pod is bound to a node and a TERMINATED event on delete.
// Updates to an already published pod are ignored.
type PodWatcher struct {
	emitter
	owners     OwnerResolver
	namespaces NamespaceLabeler
	claims     ClaimLookup
}

func NewPodWatcher(
	logger *slog.Logger,
	errs ErrorLogger,
	publisher Publisher,
	details ClusterDetails,
	clk clock.PassiveClock,
	owners OwnerResolver,
	namespaces NamespaceLabeler,
	claims ClaimLookup,
) *PodWatcher {
	return &PodWatcher{
		emitter:    newEmitter(logger, errs, publisher, details, clk, ProcessorPod),
		owners:     owners,
		namespaces: namespaces,
		claims:     claims,
	}
}

func (w *PodWatcher) Handle(ctx context.Context, n Notification[*corev1.Pod]) {
	pod := n.Object
	if pod == nil {
		return
	}

	uid := string(pod.UID)

	switch n.Type {
	case EventAdded, EventUpdated:
		w.upsert(ctx, uid, pod)
	case EventDeleted:
		w.remove(ctx, uid, pod)
	}
}

func (w *PodWatcher) upsert(ctx context.Context, uid string, pod *corev1.Pod) {
	if w.published.Has(uid) {
		return
	}

	// Unscheduled pods stay unseen until they are bound.
	if pod.Spec.NodeName == "" {
		return
	}

	if !w.isNew(pod.CreationTimestamp.Time) {
		w.logger.DebugContext(ctx, "pod predates catch-up window, marking as seen",
			"namespace", pod.Namespace,
			"pod", pod.Name,
		)
		w.published.Insert(uid)

		return
	}

	if w.publish(ctx, uid, w.info(ctx, pod), w.clock.Now()) {
		w.published.Insert(uid)
	}
}

func (w *PodWatcher) remove(ctx context.Context, uid string, pod *corev1.Pod) {
	var deleted *time.Time
	if pod.DeletionTimestamp != nil {
		deleted = &pod.DeletionTimestamp.Time
	}

	ts := w.terminalTime(deleted)
	w.publish(ctx, uid, PodEvent{
		ClusterID: w.details.ClusterID,
		PodUID:    uid,
		Type:      PodEventTerminated,
		Timestamp: ts,
	}, ts)

	w.published.Delete(uid)
}

func (w *PodWatcher) info(ctx context.Context, pod *corev1.Pod) PodInfo {
	nsLabels, err := w.namespaces.NamespaceLabels(ctx, pod.Namespace)
	if err != nil {
		w.enrichmentFailed(ctx, "namespaceLabels", err, "namespace", pod.Namespace)
	}

	if nsLabels == nil {
		nsLabels = map[string]string{}
	}

	return PodInfo{
		ClusterID:       w.details.ClusterID,
		PodUID:          string(pod.UID),
		PodName:         pod.Name,
		Namespace:       pod.Namespace,
		NodeName:        pod.Spec.NodeName,
		CreationTime:    pod.CreationTimestamp.Time,
		TotalResource:   resources.EffectiveResources(&pod.Spec),
		Volumes:         w.volumes(ctx, pod),
		QOSClass:        string(pod.Status.QOSClass),
		Containers:      containers(&pod.Spec),
		Labels:          pod.Labels,
		NamespaceLabels: nsLabels,
		TopLevelOwner:   w.owners.ResolveTopLevelOwner(ctx, pod),
	}
}

// volumes reports claim-backed volumes. A claim that cannot be read is left out.
func (w *PodWatcher) volumes(ctx context.Context, pod *corev1.Pod) []VolumeInfo {
	out := make([]VolumeInfo, 0, len(pod.Spec.Volumes))

	for i := range pod.Spec.Volumes {
		vol := &pod.Spec.Volumes[i]
		if vol.PersistentVolumeClaim == nil {
			continue
		}

		claimName := vol.PersistentVolumeClaim.ClaimName

		pvc, err := w.claims.Claim(ctx, pod.Namespace, claimName)
		if err != nil {
			w.enrichmentFailed(ctx, "volumes", err,
				"namespace", pod.Namespace,
				"claim", claimName,
			)

			continue
		}

		info := VolumeInfo{
			Name:       vol.Name,
			ClaimName:  claimName,
			VolumeName: pvc.Spec.VolumeName,
		}

		if pvc.Spec.StorageClassName != nil {
			info.StorageClass = *pvc.Spec.StorageClassName
		}

		if q, ok := pvc.Spec.Resources.Requests[corev1.ResourceStorage]; ok {
			info.StorageRequest = resources.Storage(q.String())
		}

		out = append(out, info)
	}

	return out
}

func containers(spec *corev1.PodSpec) []ContainerInfo {
	out := make([]ContainerInfo, 0, len(spec.InitContainers)+len(spec.Containers))

	for i := range spec.InitContainers {
		out = append(out, containerInfo(&spec.InitContainers[i], true))
	}

	for i := range spec.Containers {
		out = append(out, containerInfo(&spec.Containers[i], false))
	}

	return out
}

func containerInfo(c *corev1.Container, init bool) ContainerInfo {
	return ContainerInfo{
		Name:  c.Name,
		Image: c.Image,
		Init:  init,
		Resource: resources.Resource{
			Requests: resources.FromResourceList(c.Resources.Requests),
			Limits:   resources.FromResourceList(c.Resources.Limits),
		},
	}
}
