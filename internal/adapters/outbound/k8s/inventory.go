package k8s

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	kubeSystemNamespace = "kube-system"
	listPageSize        = 500
)

// ListNodeUIDs lists live node UIDs from the API, page by page.
func (c *Cluster) ListNodeUIDs(ctx context.Context) ([]string, error) {
	return listUIDs(ctx, "list nodes", func(opts metav1.ListOptions) ([]metav1.Object, string, error) {
		list, err := c.client.CoreV1().Nodes().List(ctx, opts)
		if err != nil {
			return nil, "", err
		}

		out := make([]metav1.Object, 0, len(list.Items))
		for i := range list.Items {
			out = append(out, &list.Items[i])
		}

		return out, list.Continue, nil
	})
}

// ListPodUIDs lists live pod UIDs across all namespaces.
func (c *Cluster) ListPodUIDs(ctx context.Context) ([]string, error) {
	return listUIDs(ctx, "list pods", func(opts metav1.ListOptions) ([]metav1.Object, string, error) {
		list, err := c.client.CoreV1().Pods(metav1.NamespaceAll).List(ctx, opts)
		if err != nil {
			return nil, "", err
		}

		out := make([]metav1.Object, 0, len(list.Items))
		for i := range list.Items {
			out = append(out, &list.Items[i])
		}

		return out, list.Continue, nil
	})
}

// ListPersistentVolumeUIDs lists live persistent volume UIDs.
func (c *Cluster) ListPersistentVolumeUIDs(ctx context.Context) ([]string, error) {
	return listUIDs(ctx, "list persistent volumes", func(opts metav1.ListOptions) ([]metav1.Object, string, error) {
		list, err := c.client.CoreV1().PersistentVolumes().List(ctx, opts)
		if err != nil {
			return nil, "", err
		}

		out := make([]metav1.Object, 0, len(list.Items))
		for i := range list.Items {
			out = append(out, &list.Items[i])
		}

		return out, list.Continue, nil
	})
}

// KubeSystemUID identifies the cluster by its kube-system namespace.
func (c *Cluster) KubeSystemUID(ctx context.Context) (string, error) {
	ns, err := c.GetNamespace(ctx, kubeSystemNamespace)
	if err != nil {
		return "", err
	}

	return string(ns.UID), nil
}

type pageFunc func(opts metav1.ListOptions) (items []metav1.Object, next string, err error)

func listUIDs(ctx context.Context, op string, page pageFunc) ([]string, error) {
	uids := []string{}
	opts := metav1.ListOptions{Limit: listPageSize}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, next, err := page(opts)
		if err != nil {
			return nil, wrapAPIError(op, err)
		}

		for _, item := range items {
			uids = append(uids, string(item.GetUID()))
		}

		if next == "" {
			return uids, nil
		}

		opts.Continue = next
	}
}
