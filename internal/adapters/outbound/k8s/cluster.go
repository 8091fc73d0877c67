package k8s

import (
	"context"
	"log/slog"
	"sync"
	"time"

	corev1 "k8s.io/api/core/v1"
	apiextclientset "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/skillcoder/clusterwatch/internal/logic/lifecycle"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

// Cluster is one cluster connection: a shared informer factory for mirrors and
// watches plus typed, dynamic and apiextensions clients for live calls.
type Cluster struct {
	logger    *slog.Logger
	client    kubernetes.Interface
	dynamic   dynamic.Interface
	apiext    apiextclientset.Interface
	factory   informers.SharedInformerFactory
	stopCh    chan struct{}
	startMu   sync.Mutex
	stopOnce  sync.Once
	isStopped bool
}

var _ lifecycle.Cluster = (*Cluster)(nil)

// NewCluster creates a cluster from ready clients. Informers use resync (0 disables)
// and ask the server to end each list/watch call after watchTimeout.
func NewCluster(
	logger *slog.Logger,
	client kubernetes.Interface,
	dynamicClient dynamic.Interface,
	apiextClient apiextclientset.Interface,
	resync,
	watchTimeout time.Duration,
) *Cluster {
	options := []informers.SharedInformerOption{}

	if watchTimeout > 0 {
		timeoutSeconds := int64(watchTimeout.Seconds())
		options = append(options, informers.WithTweakListOptions(func(o *metav1.ListOptions) {
			o.TimeoutSeconds = &timeoutSeconds
		}))
	}

	return &Cluster{
		logger:  logger.With("component", "k8s-cluster"),
		client:  client,
		dynamic: dynamicClient,
		apiext:  apiextClient,
		factory: informers.NewSharedInformerFactoryWithOptions(client, resync, options...),
		stopCh:  make(chan struct{}),
	}
}

// StartSideCaches starts the namespace, claim and workload mirrors.
func (c *Cluster) StartSideCaches(ctx context.Context) []func() bool {
	sideCaches := []cache.SharedIndexInformer{
		c.factory.Core().V1().Namespaces().Informer(),
		c.factory.Core().V1().PersistentVolumeClaims().Informer(),
		c.factory.Apps().V1().Deployments().Informer(),
		c.factory.Apps().V1().ReplicaSets().Informer(),
		c.factory.Apps().V1().DaemonSets().Informer(),
		c.factory.Apps().V1().StatefulSets().Informer(),
		c.factory.Batch().V1().Jobs().Informer(),
		c.factory.Batch().V1().CronJobs().Informer(),
	}

	c.start(ctx)

	synced := make([]func() bool, 0, len(sideCaches))
	for _, informer := range sideCaches {
		synced = append(synced, informer.HasSynced)
	}

	return synced
}

func (c *Cluster) WatchNodes(ctx context.Context, sink watcher.Sink[*corev1.Node]) error {
	return c.watch(ctx, "nodes", c.factory.Core().V1().Nodes().Informer(), eventHandler(c.logger, sink))
}

func (c *Cluster) WatchPersistentVolumes(ctx context.Context, sink watcher.Sink[*corev1.PersistentVolume]) error {
	return c.watch(ctx, "persistentvolumes", c.factory.Core().V1().PersistentVolumes().Informer(), eventHandler(c.logger, sink))
}

func (c *Cluster) WatchPods(ctx context.Context, sink watcher.Sink[*corev1.Pod]) error {
	return c.watch(ctx, "pods", c.factory.Core().V1().Pods().Informer(), eventHandler(c.logger, sink))
}

func (c *Cluster) watch(
	ctx context.Context,
	resource string,
	informer cache.SharedIndexInformer,
	handler cache.ResourceEventHandler,
) error {
	_, err := informer.AddEventHandler(handler)
	if err != nil {
		return wrapAPIError("add "+resource+" event handler", err)
	}

	c.start(ctx)
	c.logger.DebugContext(ctx, "watch started", "resource", resource)

	return nil
}

// start launches every informer registered so far. Already running informers are untouched.
func (c *Cluster) start(ctx context.Context) {
	c.startMu.Lock()
	defer c.startMu.Unlock()

	if c.isStopped {
		c.logger.DebugContext(ctx, "cluster stopped, not starting informers")

		return
	}

	c.factory.Start(c.stopCh)
}

// Stop stops every informer. It does not wait for running handlers.
func (c *Cluster) Stop() {
	c.stopOnce.Do(func() {
		c.startMu.Lock()
		c.isStopped = true
		close(c.stopCh)
		c.startMu.Unlock()

		go c.factory.Shutdown()
	})
}
