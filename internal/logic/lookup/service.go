// Package lookup serves the side lookups that enrich watcher records: namespace labels,
// persistent volume claims and storage class parameters.
package lookup

import (
	"context"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/clusterwatch/internal/infra/ttlcache"
)

// Service prefers the local mirror and falls back to the live API. It is safe for
// concurrent use by every watcher of one cluster.
type Service struct {
	logger        *slog.Logger
	mirror        Mirror
	getter        Getter
	storageParams *ttlcache.Cache[string, map[string]string]
}

// New creates a lookup service.
func New(logger *slog.Logger, mirror Mirror, getter Getter) *Service {
	return &Service{
		logger:        logger.With("component", "lookup"),
		mirror:        mirror,
		getter:        getter,
		storageParams: ttlcache.New[string, map[string]string]("storage-class-params", storageClassCapacity, storageClassTTL),
	}
}

// NamespaceLabels returns the labels of namespace name.
func (s *Service) NamespaceLabels(ctx context.Context, name string) (map[string]string, error) {
	if ns, ok := s.mirror.Namespace(name); ok {
		return ns.Labels, nil
	}

	s.logger.DebugContext(ctx, "namespace not mirrored, asking the api", "namespace", name)

	ns, err := s.getter.GetNamespace(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrGetNamespace, name, err)
	}

	return ns.Labels, nil
}

// Claim returns the persistent volume claim namespace/name.
func (s *Service) Claim(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error) {
	if pvc, ok := s.mirror.Claim(namespace, name); ok {
		return pvc, nil
	}

	s.logger.DebugContext(ctx, "claim not mirrored, asking the api",
		"namespace", namespace,
		"claim", name,
	)

	pvc, err := s.getter.GetClaim(ctx, namespace, name)
	if err != nil {
		return nil, fmt.Errorf("%w %s/%s: %w", ErrGetClaim, namespace, name, err)
	}

	return pvc, nil
}

// StorageClassParameters returns the provisioner parameters of a storage class.
// An empty class name returns ErrNoStorageClass without calling the API.
func (s *Service) StorageClassParameters(ctx context.Context, className string) (map[string]string, error) {
	if className == "" {
		return nil, ErrNoStorageClass
	}

	params, err := s.storageParams.GetOrLoad(ctx, className, func(ctx context.Context) (map[string]string, error) {
		sc, err := s.getter.GetStorageClass(ctx, className)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrGetStorageClass, className, err)
		}

		if sc.Parameters == nil {
			return map[string]string{}, nil
		}

		return sc.Parameters, nil
	})
	if err != nil {
		return nil, err
	}

	return params, nil
}
