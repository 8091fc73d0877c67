package resources

import corev1 "k8s.io/api/core/v1"

// EffectiveResources computes the footprint a pod reserves while running.
//
// Regular containers run in parallel, so their requests and limits are summed.
// Init containers run one at a time before them, so each one is folded into the
// accumulator with an element-wise max instead of a sum. Containers without a
// resource spec contribute zero.
func EffectiveResources(spec *corev1.PodSpec) Resource {
	out := Resource{
		Requests: List{},
		Limits:   List{},
	}

	if spec == nil {
		return out
	}

	for i := range spec.Containers {
		res := spec.Containers[i].Resources
		out.Requests = sum(out.Requests, FromResourceList(res.Requests))
		out.Limits = sum(out.Limits, FromResourceList(res.Limits))
	}

	for i := range spec.InitContainers {
		res := spec.InitContainers[i].Resources
		out.Requests = maxOf(out.Requests, FromResourceList(res.Requests))
		out.Limits = maxOf(out.Limits, FromResourceList(res.Limits))
	}

	return out
}

func sum(acc, add List) List {
	for key, q := range add {
		cur := acc[key]
		acc[key] = Quantity{Amount: cur.Amount + q.Amount, Unit: q.Unit}
	}

	return acc
}

func maxOf(acc, other List) List {
	for key, q := range other {
		cur, ok := acc[key]
		if !ok || q.Amount > cur.Amount {
			acc[key] = q
		}
	}

	return acc
}
