package k8s

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	storagev1 "k8s.io/api/storage/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func (c *Cluster) GetNamespace(ctx context.Context, name string) (*corev1.Namespace, error) {
	ns, err := c.client.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, wrapAPIError("get namespace", err)
	}

	return ns, nil
}

func (c *Cluster) GetClaim(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error) {
	pvc, err := c.client.CoreV1().PersistentVolumeClaims(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, wrapAPIError("get persistent volume claim", err)
	}

	return pvc, nil
}

func (c *Cluster) GetStorageClass(ctx context.Context, name string) (*storagev1.StorageClass, error) {
	sc, err := c.client.StorageV1().StorageClasses().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, wrapAPIError("get storage class", err)
	}

	return sc, nil
}
