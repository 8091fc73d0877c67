package k8s

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/skillcoder/clusterwatch/internal/logic/owner"
)

// Namespace reads the namespace mirror.
func (c *Cluster) Namespace(name string) (*corev1.Namespace, bool) {
	ns, err := c.factory.Core().V1().Namespaces().Lister().Get(name)
	if err != nil {
		return nil, false
	}

	return ns, true
}

// Claim reads the persistent volume claim mirror.
func (c *Cluster) Claim(namespace, name string) (*corev1.PersistentVolumeClaim, bool) {
	pvc, err := c.factory.Core().V1().PersistentVolumeClaims().Lister().PersistentVolumeClaims(namespace).Get(name)
	if err != nil {
		return nil, false
	}

	return pvc, true
}

// Workload reads the mirror of a well-known workload kind.
func (c *Cluster) Workload(kind, namespace, name string) (*owner.Workload, bool) {
	var (
		obj      metav1.Object
		replicas int32
		err      error
	)

	switch kind {
	case owner.KindDeployment:
		d, getErr := c.factory.Apps().V1().Deployments().Lister().Deployments(namespace).Get(name)
		if getErr == nil {
			obj, replicas = d, replicasOrOne(d.Spec.Replicas)
		}

		err = getErr
	case owner.KindReplicaSet:
		rs, getErr := c.factory.Apps().V1().ReplicaSets().Lister().ReplicaSets(namespace).Get(name)
		if getErr == nil {
			obj, replicas = rs, replicasOrOne(rs.Spec.Replicas)
		}

		err = getErr
	case owner.KindStatefulSet:
		ss, getErr := c.factory.Apps().V1().StatefulSets().Lister().StatefulSets(namespace).Get(name)
		if getErr == nil {
			obj, replicas = ss, replicasOrOne(ss.Spec.Replicas)
		}

		err = getErr
	case owner.KindDaemonSet:
		ds, getErr := c.factory.Apps().V1().DaemonSets().Lister().DaemonSets(namespace).Get(name)
		if getErr == nil {
			obj, replicas = ds, ds.Status.DesiredNumberScheduled
		}

		err = getErr
	case owner.KindJob:
		job, getErr := c.factory.Batch().V1().Jobs().Lister().Jobs(namespace).Get(name)
		if getErr == nil {
			obj, replicas = job, replicasOrOne(job.Spec.Parallelism)
		}

		err = getErr
	case owner.KindCronJob:
		cj, getErr := c.factory.Batch().V1().CronJobs().Lister().CronJobs(namespace).Get(name)
		if getErr == nil {
			obj, replicas = cj, 1
		}

		err = getErr
	default:
		return nil, false
	}

	if err != nil {
		return nil, false
	}

	w := owner.WorkloadFromObject(kind, obj, replicas)

	return &w, true
}

func replicasOrOne(replicas *int32) int32 {
	if replicas == nil {
		return 1
	}

	return *replicas
}
