package k8s

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/skillcoder/clusterwatch/internal/logic/owner"
)

// GetCustomObject reads a namespaced object through the dynamic client.
// owner.CoreGroup maps to the legacy core API path.
func (c *Cluster) GetCustomObject(ctx context.Context, ref owner.CustomObjectRef) (metav1.Object, error) {
	group := ref.Group
	if group == owner.CoreGroup {
		group = ""
	}

	gvr := schema.GroupVersionResource{
		Group:    group,
		Version:  ref.Version,
		Resource: ref.Plural,
	}

	obj, err := c.dynamic.Resource(gvr).Namespace(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		return nil, wrapAPIError("get "+gvr.String(), err)
	}

	return obj, nil
}

// ListKindPlurals indexes every custom resource definition by kind.
func (c *Cluster) ListKindPlurals(ctx context.Context) (map[string]string, error) {
	crds, err := c.apiext.ApiextensionsV1().CustomResourceDefinitions().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, wrapAPIError("list custom resource definitions", err)
	}

	plurals := make(map[string]string, len(crds.Items))
	for i := range crds.Items {
		names := crds.Items[i].Spec.Names
		plurals[names.Kind] = names.Plural
	}

	return plurals, nil
}
