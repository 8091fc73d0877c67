package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/skillcoder/clusterwatch/internal/infra/logging"
	"github.com/skillcoder/clusterwatch/internal/logic/owner"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher/mocks"
)

var (
	testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	errAPI     = errors.New("api unavailable")
	errConnect = errors.New("bad kubeconfig")
)

type fakeCluster struct {
	mu         sync.Mutex
	synced     bool
	stopped    int
	watchOrder []string
	nodeSink   watcher.Sink[*corev1.Node]
	podErr     error

	nodeUIDs []string
	podUIDs  []string
	pvUIDs   []string
	nodesErr error
	pvsErr   error
}

func (f *fakeCluster) Namespace(string) (*corev1.Namespace, bool) { return nil, false }

func (f *fakeCluster) Claim(string, string) (*corev1.PersistentVolumeClaim, bool) { return nil, false }

func (f *fakeCluster) GetNamespace(context.Context, string) (*corev1.Namespace, error) {
	return nil, errAPI
}

func (f *fakeCluster) GetClaim(context.Context, string, string) (*corev1.PersistentVolumeClaim, error) {
	return nil, errAPI
}

func (f *fakeCluster) GetStorageClass(context.Context, string) (*storagev1.StorageClass, error) {
	return nil, errAPI
}

func (f *fakeCluster) Workload(string, string, string) (*owner.Workload, bool) { return nil, false }

func (f *fakeCluster) GetCustomObject(context.Context, owner.CustomObjectRef) (metav1.Object, error) {
	return nil, errAPI
}

func (f *fakeCluster) ListKindPlurals(context.Context) (map[string]string, error) {
	return nil, errAPI
}

func (f *fakeCluster) StartSideCaches(context.Context) []func() bool {
	return []func() bool{func() bool { return f.synced }}
}

func (f *fakeCluster) WatchNodes(_ context.Context, sink watcher.Sink[*corev1.Node]) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.watchOrder = append(f.watchOrder, kindNode)
	f.nodeSink = sink

	return nil
}

func (f *fakeCluster) WatchPersistentVolumes(context.Context, watcher.Sink[*corev1.PersistentVolume]) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.watchOrder = append(f.watchOrder, kindPV)

	return nil
}

func (f *fakeCluster) WatchPods(context.Context, watcher.Sink[*corev1.Pod]) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.watchOrder = append(f.watchOrder, kindPod)

	return f.podErr
}

func (f *fakeCluster) ListNodeUIDs(context.Context) ([]string, error) { return f.nodeUIDs, f.nodesErr }

func (f *fakeCluster) ListPodUIDs(context.Context) ([]string, error) { return f.podUIDs, nil }

func (f *fakeCluster) ListPersistentVolumeUIDs(context.Context) ([]string, error) {
	return f.pvUIDs, f.pvsErr
}

func (f *fakeCluster) KubeSystemUID(context.Context) (string, error) { return "kube-system-uid", nil }

func (f *fakeCluster) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped++
}

func (f *fakeCluster) stopCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stopped
}

type fakeConnector struct {
	mu      sync.Mutex
	cluster *fakeCluster
	err     error
	calls   int
	// entered and gate hold Connect open when set.
	entered chan struct{}
	gate    chan struct{}
}

func (c *fakeConnector) Connect(context.Context, []byte) (Cluster, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()

	if c.entered != nil {
		c.entered <- struct{}{}
	}

	if c.gate != nil {
		<-c.gate
	}

	if c.err != nil {
		return nil, c.err
	}

	return c.cluster, nil
}

func (c *fakeConnector) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.calls
}

func newTestManager(t *testing.T, connector Connector) (*Manager, *mocks.MockPublisher) {
	t.Helper()

	pub := mocks.NewMockPublisher(t)
	m := New(
		slog.Default(),
		logging.NewDeduper(slog.Default()),
		connector,
		pub,
		testingclock.NewFakeClock(testNow),
		8,
	)
	m.syncWait = 50 * time.Millisecond

	t.Cleanup(func() {
		_ = m.Shutdown(context.Background())
	})

	return m, pub
}

func details(id string) watcher.ClusterDetails {
	return watcher.ClusterDetails{ClusterID: id, ClusterName: "prod", IsSeen: true}
}

func TestManager_CreateIsIdempotent(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: true}
	connector := &fakeConnector{cluster: cluster}
	m, _ := newTestManager(t, connector)

	id, err := m.Create(t.Context(), details("c1"), nil)
	require.NoError(t, err)
	require.Equal(t, "c1", id)

	id, err = m.Create(t.Context(), details("c1"), nil)
	require.NoError(t, err)
	require.Equal(t, "c1", id)

	require.Equal(t, 1, connector.calls)
	require.Equal(t, []string{kindNode, kindPV, kindPod}, cluster.watchOrder)

	watches := m.Watches()
	require.Len(t, watches, 1)
	require.Equal(t, "c1", watches[0].WatchID)
	require.Equal(t, "kube-system-uid", watches[0].KubeSystemUID)
	require.Equal(t, testNow, watches[0].StartedAt)
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: true}
	m, _ := newTestManager(t, &fakeConnector{cluster: cluster})

	require.False(t, m.Delete(t.Context(), "missing"))

	_, err := m.Create(t.Context(), details("c1"), nil)
	require.NoError(t, err)

	require.True(t, m.Delete(t.Context(), "c1"))
	require.Equal(t, 1, cluster.stopCount())
	require.False(t, m.Delete(t.Context(), "c1"))
	require.Empty(t, m.Watches())
}

type createFailureCase struct {
	name          string
	giveDetails   watcher.ClusterDetails
	giveConnector *fakeConnector
	wantErr       error
}

func TestManager_CreateFailures(t *testing.T) {
	t.Parallel()

	tests := []createFailureCase{
		{
			name:          "empty cluster id",
			giveDetails:   details(""),
			giveConnector: &fakeConnector{cluster: &fakeCluster{synced: true}},
			wantErr:       ErrEmptyClusterID,
		},
		{
			name:          "connect failure",
			giveDetails:   details("c1"),
			giveConnector: &fakeConnector{err: errConnect},
			wantErr:       ErrConnect,
		},
		{
			name:          "pod watch failure aborts create",
			giveDetails:   details("c1"),
			giveConnector: &fakeConnector{cluster: &fakeCluster{synced: true, podErr: errAPI}},
			wantErr:       ErrStartWatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, _ := newTestManager(t, tt.giveConnector)

			_, err := m.Create(t.Context(), tt.giveDetails, nil)
			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, m.Watches())

			if c := tt.giveConnector.cluster; c != nil && tt.giveDetails.ClusterID != "" {
				require.Equal(t, 1, c.stopCount())
			}
		})
	}
}

func TestManager_CreateProceedsWhenSideCachesNeverSync(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: false}
	m, _ := newTestManager(t, &fakeConnector{cluster: cluster})

	_, err := m.Create(t.Context(), details("c1"), nil)
	require.NoError(t, err)
	require.Len(t, m.Watches(), 1)
}

func TestManager_NotificationsReachThePublisher(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: true}
	m, pub := newTestManager(t, &fakeConnector{cluster: cluster})

	published := make(chan watcher.Record, 1)

	pub.EXPECT().
		Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything, watcher.ProcessorNode).
		Run(func(_ context.Context, record watcher.Record, _ time.Time, _ map[string]string, _ string) {
			published <- record
		}).
		Return(nil).
		Once()

	_, err := m.Create(t.Context(), details("c1"), nil)
	require.NoError(t, err)

	cluster.nodeSink.Enqueue(watcher.Notification[*corev1.Node]{
		Type: watcher.EventAdded,
		Object: &corev1.Node{ObjectMeta: metav1.ObjectMeta{
			Name:              "node-a",
			UID:               "node-uid",
			CreationTimestamp: metav1.NewTime(testNow),
		}},
	})

	select {
	case record := <-published:
		require.Equal(t, watcher.RecordNodeInfo, record.RecordType())
	case <-time.After(time.Second):
		t.Fatal("node notification was not published")
	}
}

func TestManager_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("volume listing failure sends an empty list", func(t *testing.T) {
		t.Parallel()

		cluster := &fakeCluster{
			synced:   true,
			nodeUIDs: []string{"n1"},
			podUIDs:  []string{"p1", "p2"},
			pvsErr:   errAPI,
		}
		m, pub := newTestManager(t, &fakeConnector{cluster: cluster})

		_, err := m.Create(t.Context(), details("c1"), nil)
		require.NoError(t, err)

		pub.EXPECT().
			Publish(
				mock.Anything,
				watcher.ClusterSync{
					ClusterID:     "c1",
					ClusterName:   "prod",
					KubeSystemUID: "kube-system-uid",
					NodeUIDs:      []string{"n1"},
					PodUIDs:       []string{"p1", "p2"},
					PVUIDs:        []string{},
					Timestamp:     testNow,
				},
				testNow,
				map[string]string{watcher.AttrClusterID: "c1"},
				watcher.ProcessorSync,
			).
			Return(nil).
			Once()

		require.NoError(t, m.Snapshot(t.Context()))
	})

	t.Run("node listing failure aborts", func(t *testing.T) {
		t.Parallel()

		cluster := &fakeCluster{synced: true, nodesErr: errAPI}
		m, _ := newTestManager(t, &fakeConnector{cluster: cluster})

		_, err := m.Create(t.Context(), details("c1"), nil)
		require.NoError(t, err)

		err = m.Snapshot(t.Context())
		require.ErrorIs(t, err, ErrSnapshot)
		require.ErrorIs(t, err, errAPI)
	})
}

func TestManager_ShutdownRejectsCreate(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: true}
	m, _ := newTestManager(t, &fakeConnector{cluster: cluster})

	_, err := m.Create(t.Context(), details("c1"), nil)
	require.NoError(t, err)

	require.NoError(t, m.Shutdown(t.Context()))
	require.Equal(t, 1, cluster.stopCount())
	require.Empty(t, m.Watches())

	_, err = m.Create(t.Context(), details("c2"), nil)
	require.ErrorIs(t, err, ErrShuttingDown)
}

func TestManager_ConcurrentCreateStartsOneWatch(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: true}
	connector := &fakeConnector{
		cluster: cluster,
		entered: make(chan struct{}, 4),
		gate:    make(chan struct{}),
	}
	m, pub := newTestManager(t, connector)

	const callers = 4

	published := make(chan struct{}, callers)

	pub.EXPECT().
		Publish(mock.Anything, mock.Anything, mock.Anything, mock.Anything, watcher.ProcessorNode).
		Run(func(context.Context, watcher.Record, time.Time, map[string]string, string) {
			published <- struct{}{}
		}).
		Return(nil).
		Once()

	ids := make(chan string, callers)
	errs := make(chan error, callers)

	for range callers {
		go func() {
			id, err := m.Create(t.Context(), details("c1"), nil)
			ids <- id
			errs <- err
		}()
	}

	<-connector.entered
	// let the other callers queue up behind the first one
	time.Sleep(20 * time.Millisecond)
	close(connector.gate)

	for range callers {
		require.NoError(t, <-errs)
		require.Equal(t, "c1", <-ids)
	}

	require.Equal(t, 1, connector.callCount())
	require.Len(t, m.Watches(), 1)
	require.Equal(t, []string{kindNode, kindPV, kindPod}, cluster.watchOrder)

	cluster.nodeSink.Enqueue(watcher.Notification[*corev1.Node]{
		Type: watcher.EventAdded,
		Object: &corev1.Node{ObjectMeta: metav1.ObjectMeta{
			Name:              "node-a",
			UID:               "node-uid",
			CreationTimestamp: metav1.NewTime(testNow),
		}},
	})

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("node notification was not published")
	}
}

func TestManager_ShutdownDuringCreate(t *testing.T) {
	t.Parallel()

	cluster := &fakeCluster{synced: true}
	connector := &fakeConnector{
		cluster: cluster,
		entered: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	m, _ := newTestManager(t, connector)

	errs := make(chan error, 1)

	go func() {
		_, err := m.Create(t.Context(), details("c1"), nil)
		errs <- err
	}()

	<-connector.entered
	require.NoError(t, m.Shutdown(t.Context()))
	close(connector.gate)

	require.ErrorIs(t, <-errs, ErrShuttingDown)
	require.Empty(t, m.Watches())
	require.Equal(t, 1, cluster.stopCount())
}
