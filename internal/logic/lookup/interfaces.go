package lookup

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
)

// Mirror is the informer-backed local view of namespaces and claims.
// ok is false until the object reaches the local store.
type Mirror interface {
	Namespace(name string) (ns *corev1.Namespace, ok bool)
	Claim(namespace, name string) (pvc *corev1.PersistentVolumeClaim, ok bool)
}

// Getter reads objects from the live API.
type Getter interface {
	GetNamespace(ctx context.Context, name string) (*corev1.Namespace, error)
	GetClaim(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error)
	GetStorageClass(ctx context.Context, name string) (*storagev1.StorageClass, error)
}
