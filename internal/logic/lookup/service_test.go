package lookup_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/skillcoder/clusterwatch/internal/logic/lookup"
)

var errAPI = errors.New("api unavailable")

type fakeMirror struct {
	namespaces map[string]*corev1.Namespace
	claims     map[string]*corev1.PersistentVolumeClaim
}

func (m *fakeMirror) Namespace(name string) (*corev1.Namespace, bool) {
	ns, ok := m.namespaces[name]

	return ns, ok
}

func (m *fakeMirror) Claim(namespace, name string) (*corev1.PersistentVolumeClaim, bool) {
	pvc, ok := m.claims[namespace+"/"+name]

	return pvc, ok
}

type fakeGetter struct {
	namespaces     map[string]*corev1.Namespace
	claims         map[string]*corev1.PersistentVolumeClaim
	storageClasses map[string]*storagev1.StorageClass
	calls          map[string]int
}

func newFakeGetter() *fakeGetter {
	return &fakeGetter{
		namespaces:     map[string]*corev1.Namespace{},
		claims:         map[string]*corev1.PersistentVolumeClaim{},
		storageClasses: map[string]*storagev1.StorageClass{},
		calls:          map[string]int{},
	}
}

func (g *fakeGetter) GetNamespace(_ context.Context, name string) (*corev1.Namespace, error) {
	g.calls["namespace"]++

	ns, ok := g.namespaces[name]
	if !ok {
		return nil, errAPI
	}

	return ns, nil
}

func (g *fakeGetter) GetClaim(_ context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error) {
	g.calls["claim"]++

	pvc, ok := g.claims[namespace+"/"+name]
	if !ok {
		return nil, errAPI
	}

	return pvc, nil
}

func (g *fakeGetter) GetStorageClass(_ context.Context, name string) (*storagev1.StorageClass, error) {
	g.calls["storageclass"]++

	sc, ok := g.storageClasses[name]
	if !ok {
		return nil, errAPI
	}

	return sc, nil
}

func namespace(name string, labels map[string]string) *corev1.Namespace {
	return &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels}}
}

func claim(namespace, name, size string) *corev1.PersistentVolumeClaim {
	return &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Namespace: namespace, Name: name},
		Spec: corev1.PersistentVolumeClaimSpec{
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: resource.MustParse(size)},
			},
		},
	}
}

func TestService_NamespaceLabels(t *testing.T) {
	t.Parallel()

	t.Run("mirror hit skips the api", func(t *testing.T) {
		t.Parallel()

		mirror := &fakeMirror{namespaces: map[string]*corev1.Namespace{
			"prod": namespace("prod", map[string]string{"env": "prod"}),
		}}
		getter := newFakeGetter()
		svc := lookup.New(slog.Default(), mirror, getter)

		got, err := svc.NamespaceLabels(t.Context(), "prod")
		require.NoError(t, err)
		require.Equal(t, map[string]string{"env": "prod"}, got)
		require.Zero(t, getter.calls["namespace"])
	})

	t.Run("mirror miss falls back to the api", func(t *testing.T) {
		t.Parallel()

		getter := newFakeGetter()
		getter.namespaces["new"] = namespace("new", map[string]string{"team": "a"})
		svc := lookup.New(slog.Default(), &fakeMirror{}, getter)

		got, err := svc.NamespaceLabels(t.Context(), "new")
		require.NoError(t, err)
		require.Equal(t, map[string]string{"team": "a"}, got)
		require.Equal(t, 1, getter.calls["namespace"])
	})

	t.Run("api failure is returned", func(t *testing.T) {
		t.Parallel()

		svc := lookup.New(slog.Default(), &fakeMirror{}, newFakeGetter())

		_, err := svc.NamespaceLabels(t.Context(), "gone")
		require.ErrorIs(t, err, lookup.ErrGetNamespace)
		require.ErrorIs(t, err, errAPI)
	})
}

func TestService_Claim(t *testing.T) {
	t.Parallel()

	mirror := &fakeMirror{claims: map[string]*corev1.PersistentVolumeClaim{
		"db/data-0": claim("db", "data-0", "10Gi"),
	}}
	getter := newFakeGetter()
	getter.claims["db/data-1"] = claim("db", "data-1", "20Gi")
	svc := lookup.New(slog.Default(), mirror, getter)

	got, err := svc.Claim(t.Context(), "db", "data-0")
	require.NoError(t, err)
	require.Equal(t, "data-0", got.Name)
	require.Zero(t, getter.calls["claim"])

	got, err = svc.Claim(t.Context(), "db", "data-1")
	require.NoError(t, err)
	require.Equal(t, "data-1", got.Name)
	require.Equal(t, 1, getter.calls["claim"])

	_, err = svc.Claim(t.Context(), "db", "data-2")
	require.ErrorIs(t, err, lookup.ErrGetClaim)
}

func TestService_StorageClassParameters(t *testing.T) {
	t.Parallel()

	t.Run("cached for repeated lookups", func(t *testing.T) {
		t.Parallel()

		getter := newFakeGetter()
		getter.storageClasses["gp3"] = &storagev1.StorageClass{
			ObjectMeta: metav1.ObjectMeta{Name: "gp3"},
			Parameters: map[string]string{"type": "gp3", "iops": "3000"},
		}
		svc := lookup.New(slog.Default(), &fakeMirror{}, getter)

		for range 3 {
			got, err := svc.StorageClassParameters(t.Context(), "gp3")
			require.NoError(t, err)
			require.Equal(t, map[string]string{"type": "gp3", "iops": "3000"}, got)
		}

		require.Equal(t, 1, getter.calls["storageclass"])
	})

	t.Run("empty class name", func(t *testing.T) {
		t.Parallel()

		getter := newFakeGetter()
		svc := lookup.New(slog.Default(), &fakeMirror{}, getter)

		_, err := svc.StorageClassParameters(t.Context(), "")
		require.ErrorIs(t, err, lookup.ErrNoStorageClass)
		require.Zero(t, getter.calls["storageclass"])
	})

	t.Run("failures are not cached", func(t *testing.T) {
		t.Parallel()

		getter := newFakeGetter()
		svc := lookup.New(slog.Default(), &fakeMirror{}, getter)

		_, err := svc.StorageClassParameters(t.Context(), "missing")
		require.ErrorIs(t, err, lookup.ErrGetStorageClass)

		_, err = svc.StorageClassParameters(t.Context(), "missing")
		require.Error(t, err)
		require.Equal(t, 2, getter.calls["storageclass"])
	})

	t.Run("class without parameters", func(t *testing.T) {
		t.Parallel()

		getter := newFakeGetter()
		getter.storageClasses["standard"] = &storagev1.StorageClass{ObjectMeta: metav1.ObjectMeta{Name: "standard"}}
		svc := lookup.New(slog.Default(), &fakeMirror{}, getter)

		got, err := svc.StorageClassParameters(t.Context(), "standard")
		require.NoError(t, err)
		require.Empty(t, got)
		require.NotNil(t, got)
	})
}
