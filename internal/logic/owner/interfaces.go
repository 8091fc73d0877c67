package owner

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// WorkloadMirror is the local, informer-backed view of the well-known workload kinds.
// ok is false when the object is not in the mirror.
type WorkloadMirror interface {
	Workload(kind, namespace, name string) (w *Workload, ok bool)
}

// CustomObjectGetter fetches an arbitrary namespaced custom object from the live API.
type CustomObjectGetter interface {
	GetCustomObject(ctx context.Context, ref CustomObjectRef) (metav1.Object, error)
}

// KindPluralLister lists every custom resource definition as a kind to plural-name index.
type KindPluralLister interface {
	ListKindPlurals(ctx context.Context) (map[string]string, error)
}

// errorLogger mutes repeated transient errors.
type errorLogger interface {
	Error(ctx context.Context, msg string, err error, args ...any) bool
}

// statusCoder is a private interface for reading the HTTP status of an API error
// without importing the adapter package.
type statusCoder interface {
	StatusCode() int
}
