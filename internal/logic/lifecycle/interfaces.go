package lifecycle

import (
	"context"

	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/clusterwatch/internal/logic/lookup"
	"github.com/skillcoder/clusterwatch/internal/logic/owner"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// Connector opens a client bound to a connection blob.
// An empty blob means the connector's default connection.
type Connector interface {
	Connect(ctx context.Context, connection []byte) (Cluster, error)
}

// Cluster is everything one watch needs from the cluster API.
// Implementations are provided by adapters in the outbound layer.
type Cluster interface {
	lookup.Mirror
	lookup.Getter
	owner.WorkloadMirror
	owner.CustomObjectGetter
	owner.KindPluralLister

	// StartSideCaches starts the namespace, claim and workload mirrors and returns
	// one initial-sync check per mirror.
	StartSideCaches(ctx context.Context) []func() bool

	WatchNodes(ctx context.Context, sink watcher.Sink[*corev1.Node]) error
	WatchPersistentVolumes(ctx context.Context, sink watcher.Sink[*corev1.PersistentVolume]) error
	WatchPods(ctx context.Context, sink watcher.Sink[*corev1.Pod]) error

	ListNodeUIDs(ctx context.Context) ([]string, error)
	ListPodUIDs(ctx context.Context) ([]string, error)
	ListPersistentVolumeUIDs(ctx context.Context) ([]string, error)

	KubeSystemUID(ctx context.Context) (string, error)

	// Stop stops every informer started for this cluster.
	Stop()
}
