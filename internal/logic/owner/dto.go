package owner

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// OwnerRef points from a child object to one of its parents.
type OwnerRef struct {
	Kind         string `json:"kind"`
	Name         string `json:"name"`
	APIVersion   string `json:"apiVersion"`
	UID          string `json:"uid"`
	IsController bool   `json:"isController"`
}

// Workload is any object that can own a pod, built-in or custom.
type Workload struct {
	Kind            string
	Namespace       string
	Name            string
	UID             string
	OwnerReferences []OwnerRef
	Labels          map[string]string
	CreationTime    time.Time
	DeletionTime    *time.Time
	Replicas        int32
}

// Owner is the resolved top-level controller of a pod.
type Owner struct {
	Kind   string            `json:"kind"`
	Name   string            `json:"name"`
	UID    string            `json:"uid"`
	Labels map[string]string `json:"labels,omitempty"`
}

// WorkloadFromObject reads the uniform object metadata into a Workload.
func WorkloadFromObject(kind string, obj metav1.Object, replicas int32) Workload {
	w := Workload{
		Kind:         kind,
		Namespace:    obj.GetNamespace(),
		Name:         obj.GetName(),
		UID:          string(obj.GetUID()),
		Labels:       obj.GetLabels(),
		CreationTime: obj.GetCreationTimestamp().Time,
		Replicas:     replicas,
	}

	if ts := obj.GetDeletionTimestamp(); ts != nil {
		deleted := ts.Time
		w.DeletionTime = &deleted
	}

	refs := obj.GetOwnerReferences()
	if len(refs) > 0 {
		w.OwnerReferences = make([]OwnerRef, 0, len(refs))
	}

	for i := range refs {
		w.OwnerReferences = append(w.OwnerReferences, OwnerRef{
			Kind:         refs[i].Kind,
			Name:         refs[i].Name,
			APIVersion:   refs[i].APIVersion,
			UID:          string(refs[i].UID),
			IsController: refs[i].Controller != nil && *refs[i].Controller,
		})
	}

	return w
}

// ControllerRef returns the owner reference flagged as controller, if any.
func (w *Workload) ControllerRef() (OwnerRef, bool) {
	for _, ref := range w.OwnerReferences {
		if ref.IsController {
			return ref, true
		}
	}

	return OwnerRef{}, false
}

// Owner projects the workload to the resolver output.
func (w *Workload) Owner() Owner {
	return Owner{
		Kind:   w.Kind,
		Name:   w.Name,
		UID:    w.UID,
		Labels: w.Labels,
	}
}

// CustomObjectRef addresses a namespaced custom object through the generic API.
type CustomObjectRef struct {
	Group     string
	Version   string
	Namespace string
	Plural    string
	Name      string
}
