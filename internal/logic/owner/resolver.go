package owner

import (
	"context"
	"log/slog"
	"sync/atomic"

	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/clusterwatch/internal/infra/metrics"
	"github.com/skillcoder/clusterwatch/internal/infra/ttlcache"
)

// crdKey identifies a custom workload reference in the cache.
type crdKey struct {
	Namespace  string
	Name       string
	Kind       string
	APIVersion string
	UID        string
}

// Resolver walks pod controller chains up to the top-level owner.
type Resolver struct {
	logger      *slog.Logger
	errs        errorLogger
	mirror      WorkloadMirror
	objects     CustomObjectGetter
	plurals     KindPluralLister
	crdCache    *ttlcache.Cache[crdKey, Workload]
	pluralCache *ttlcache.Cache[struct{}, map[string]string]
	tripped     atomic.Bool
}

// NewResolver creates an owner resolver for one cluster.
func NewResolver(
	logger *slog.Logger,
	errs errorLogger,
	mirror WorkloadMirror,
	objects CustomObjectGetter,
	plurals KindPluralLister,
) *Resolver {
	return &Resolver{
		logger:      logger.With("component", "owner-resolver"),
		errs:        errs,
		mirror:      mirror,
		objects:     objects,
		plurals:     plurals,
		crdCache:    ttlcache.New[crdKey, Workload]("custom-workloads", customWorkloadCapacity, customWorkloadTTL),
		pluralCache: ttlcache.New[struct{}, map[string]string]("kind-plurals", 1, kindPluralTTL),
	}
}

// ResolveTopLevelOwner follows controller references from pod to the last resolvable
// ancestor. A pod without a controller is its own owner.
func (r *Resolver) ResolveTopLevelOwner(ctx context.Context, pod *corev1.Pod) Owner {
	current := WorkloadFromObject(KindPod, pod, 1)
	visited := map[string]struct{}{objectKey(&current): {}}

	for {
		ref, ok := current.ControllerRef()
		if !ok {
			break
		}

		next, ok := r.resolveRef(ctx, current.Namespace, ref)
		if !ok {
			r.logger.DebugContext(ctx, "owner not found, stopping walk",
				"kind", ref.Kind,
				"name", ref.Name,
				"namespace", current.Namespace,
			)

			break
		}

		key := objectKey(next)
		if _, seen := visited[key]; seen {
			r.logger.WarnContext(ctx, "owner reference cycle, stopping walk", "owner", key)

			break
		}

		visited[key] = struct{}{}
		current = *next
	}

	return current.Owner()
}

// IsBreakerTripped reports whether custom resource lookups are short-circuited.
func (r *Resolver) IsBreakerTripped() bool {
	return r.tripped.Load()
}

func (r *Resolver) resolveRef(ctx context.Context, namespace string, ref OwnerRef) (*Workload, bool) {
	if !IsWellKnownKind(ref.Kind) {
		w := r.ResolveCustomWorkload(ctx, namespace, ref)

		return &w, true
	}

	w, ok := r.mirror.Workload(ref.Kind, namespace, ref.Name)
	if !ok {
		return nil, false
	}

	// A recreated object with the same name is not the referenced parent.
	if ref.UID != "" && w.UID != "" && ref.UID != w.UID {
		return nil, false
	}

	return w, true
}

func (r *Resolver) trip(ctx context.Context, err error) {
	if r.tripped.Swap(true) {
		return
	}

	metrics.SetCRDBreakerTripped()
	r.logger.WarnContext(ctx, "custom resource lookups disabled for the life of the watch", "reason", err)
}

func objectKey(w *Workload) string {
	if w.UID != "" {
		return w.UID
	}

	return w.Kind + "/" + w.Namespace + "/" + w.Name
}
