package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// ResolveCustomWorkload resolves a reference to a kind the mirror does not cover.
// It never fails: when the object cannot be read a minimal workload is synthesized
// from the reference itself.
func (r *Resolver) ResolveCustomWorkload(ctx context.Context, namespace string, ref OwnerRef) Workload {
	key := crdKey{
		Namespace:  namespace,
		Name:       ref.Name,
		Kind:       ref.Kind,
		APIVersion: ref.APIVersion,
		UID:        ref.UID,
	}

	w, err := r.crdCache.GetOrLoad(ctx, key, func(ctx context.Context) (Workload, error) {
		return r.loadCustomWorkload(ctx, key)
	})
	if err != nil {
		return fallbackWorkload(key)
	}

	return w
}

func (r *Resolver) loadCustomWorkload(ctx context.Context, key crdKey) (Workload, error) {
	if r.tripped.Load() {
		return Workload{}, ErrBreakerOpen
	}

	gv := GroupVersionOf(key.APIVersion)
	ref := CustomObjectRef{
		Group:     gv.Group,
		Version:   gv.Version,
		Namespace: key.Namespace,
		Plural:    r.pluralFor(ctx, key.Kind),
		Name:      key.Name,
	}

	obj, err := r.objects.GetCustomObject(ctx, ref)
	if err != nil {
		var target statusCoder
		if errors.As(err, &target) {
			if _, permanent := permanentStatusCodes[target.StatusCode()]; permanent {
				r.trip(ctx, err)

				return Workload{}, fmt.Errorf("%w: %w", ErrGetCustomObject, err)
			}
		}

		r.errs.Error(ctx, "get custom workload failed", err,
			"kind", key.Kind,
			"apiVersion", key.APIVersion,
		)

		return Workload{}, fmt.Errorf("%w: %w", ErrGetCustomObject, err)
	}

	return WorkloadFromObject(key.Kind, obj, fallbackReplicas), nil
}

func (r *Resolver) pluralFor(ctx context.Context, kind string) string {
	plurals, err := r.pluralCache.GetOrLoad(ctx, struct{}{}, r.plurals.ListKindPlurals)
	if err != nil {
		r.errs.Error(ctx, "list custom resource definitions failed", err)

		return Pluralize(kind)
	}

	if plural, ok := plurals[kind]; ok {
		return plural
	}

	return Pluralize(kind)
}

// GroupVersionOf splits an apiVersion. A version without a group belongs to CoreGroup.
func GroupVersionOf(apiVersion string) schema.GroupVersion {
	group, version, found := strings.Cut(apiVersion, "/")
	if !found {
		return schema.GroupVersion{Group: CoreGroup, Version: apiVersion}
	}

	return schema.GroupVersion{Group: group, Version: version}
}

// Pluralize guesses the REST plural of kind: lowercase, then "es" after a trailing "s",
// otherwise "s". Irregular plurals come out wrong; callers rely on this exact output.
func Pluralize(kind string) string {
	lower := strings.ToLower(kind)
	if strings.HasSuffix(lower, "s") {
		return lower + "es"
	}

	return lower + "s"
}

func fallbackWorkload(key crdKey) Workload {
	return Workload{
		Kind:      key.Kind,
		Namespace: key.Namespace,
		Name:      key.Name,
		UID:       key.UID,
		Replicas:  fallbackReplicas,
	}
}
