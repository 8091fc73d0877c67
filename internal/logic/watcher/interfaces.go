package watcher

import (
	"context"
	"time"

	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/clusterwatch/internal/logic/owner"
)

// Publisher hands finished records to the outbound transport.
// Delivery and retries are the publisher's concern.
type Publisher interface {
	Publish(
		ctx context.Context,
		record Record,
		timestamp time.Time,
		attributes map[string]string,
		processorType string,
	) error
}

// Handler processes notifications of one kind, one at a time.
type Handler[T any] interface {
	Handle(ctx context.Context, n Notification[T])
}

// Sink accepts notifications from a watch.
type Sink[T any] interface {
	Enqueue(n Notification[T])
}

// OwnerResolver finds the top-level controller of a pod.
type OwnerResolver interface {
	ResolveTopLevelOwner(ctx context.Context, pod *corev1.Pod) owner.Owner
}

// NamespaceLabeler returns namespace labels.
type NamespaceLabeler interface {
	NamespaceLabels(ctx context.Context, name string) (map[string]string, error)
}

// ClaimLookup returns persistent volume claims.
type ClaimLookup interface {
	Claim(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error)
}

// StorageClassLookup returns storage class parameters.
type StorageClassLookup interface {
	StorageClassParameters(ctx context.Context, className string) (map[string]string, error)
}

// ErrorLogger logs transient errors with repeat suppression.
type ErrorLogger interface {
	Error(ctx context.Context, msg string, err error, args ...any) bool
}
