package lifecycle

import (
	"context"
	"time"

	"github.com/skillcoder/clusterwatch/internal/logic/owner"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// WatchHandle is one live cluster watch. Only the Manager creates and stops handles.
type WatchHandle struct {
	ID        string
	Details   watcher.ClusterDetails
	StartedAt time.Time

	cluster  Cluster
	cancel   context.CancelFunc
	resolver *owner.Resolver
	nodes    *watcher.NodeWatcher
	volumes  *watcher.PVWatcher
	pods     *watcher.PodWatcher
}

// stop is fire-and-forget: in-flight callbacks may still finish afterwards.
func (h *WatchHandle) stop() {
	h.cancel()
	h.cluster.Stop()
}

// Info describes the handle for status endpoints.
func (h *WatchHandle) Info() WatchInfo {
	return WatchInfo{
		WatchID:          h.ID,
		ClusterName:      h.Details.ClusterName,
		CloudProviderID:  h.Details.CloudProviderID,
		KubeSystemUID:    h.Details.KubeSystemUID,
		IsSeen:           h.Details.IsSeen,
		StartedAt:        h.StartedAt,
		BreakerTripped:   h.resolver.IsBreakerTripped(),
		PublishedNodes:   h.nodes.Published().Len(),
		PublishedVolumes: h.volumes.Published().Len(),
		PublishedPods:    h.pods.Published().Len(),
	}
}

type WatchInfo struct {
	WatchID          string    `json:"watchId"`
	ClusterName      string    `json:"clusterName,omitempty"`
	CloudProviderID  string    `json:"cloudProviderId,omitempty"`
	KubeSystemUID    string    `json:"kubeSystemUid,omitempty"`
	IsSeen           bool      `json:"isSeen"`
	StartedAt        time.Time `json:"startedAt"`
	BreakerTripped   bool      `json:"crdBreakerTripped"`
	PublishedNodes   int       `json:"publishedNodes"`
	PublishedVolumes int       `json:"publishedVolumes"`
	PublishedPods    int       `json:"publishedPods"`
}
