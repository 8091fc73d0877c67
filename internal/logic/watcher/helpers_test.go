package watcher_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/skillcoder/clusterwatch/internal/infra/logging"
	"github.com/skillcoder/clusterwatch/internal/logic/owner"
	"github.com/skillcoder/clusterwatch/internal/logic/watcher"
)

var (
	testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	errLookup  = errors.New("lookup failed")
	errPublish = errors.New("broker unavailable")
)

func seenCluster() watcher.ClusterDetails {
	return watcher.ClusterDetails{ClusterID: "cluster-1", ClusterName: "prod", IsSeen: true}
}

func newCluster() watcher.ClusterDetails {
	return watcher.ClusterDetails{ClusterID: "cluster-1", ClusterName: "prod", IsSeen: false}
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func testDeduper() *logging.Deduper {
	return logging.NewDeduper(slog.Default())
}

func ofType(rt watcher.RecordType) any {
	return mock.MatchedBy(func(r watcher.Record) bool {
		return r.RecordType() == rt
	})
}

func attrsFor(uid string) map[string]string {
	return map[string]string{
		watcher.AttrClusterID: "cluster-1",
		watcher.AttrObjectUID: uid,
	}
}

func objectMeta(name, uid string, created time.Time) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:              name,
		Namespace:         "default",
		UID:               types.UID(uid),
		CreationTimestamp: metav1.NewTime(created),
	}
}

func quantities(pairs ...string) corev1.ResourceList {
	list := corev1.ResourceList{}
	for i := 0; i+1 < len(pairs); i += 2 {
		list[corev1.ResourceName(pairs[i])] = resource.MustParse(pairs[i+1])
	}

	return list
}

type fakeOwners struct {
	owner owner.Owner
	calls int
}

func (f *fakeOwners) ResolveTopLevelOwner(context.Context, *corev1.Pod) owner.Owner {
	f.calls++

	return f.owner
}

type fakeNamespaces struct {
	labels map[string]string
	err    error
}

func (f *fakeNamespaces) NamespaceLabels(context.Context, string) (map[string]string, error) {
	return f.labels, f.err
}

type fakeClaims struct {
	claims map[string]*corev1.PersistentVolumeClaim
}

func (f *fakeClaims) Claim(_ context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error) {
	pvc, ok := f.claims[namespace+"/"+name]
	if !ok {
		return nil, errLookup
	}

	return pvc, nil
}

type fakeStorage struct {
	params map[string]map[string]string
	calls  int
}

func (f *fakeStorage) StorageClassParameters(_ context.Context, name string) (map[string]string, error) {
	f.calls++

	p, ok := f.params[name]
	if !ok {
		return nil, errLookup
	}

	return p, nil
}

// recordingErrors collects the messages the watchers report as failures.
type recordingErrors struct {
	messages []string
}

func (r *recordingErrors) Error(_ context.Context, msg string, _ error, _ ...any) bool {
	r.messages = append(r.messages, msg)

	return true
}
