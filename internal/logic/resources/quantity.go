package resources

import (
	"maps"

	"gopkg.in/inf.v0"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Unit tags the scale of a Quantity amount.
type Unit string

const (
	UnitNone Unit = "none"
	UnitNano Unit = "nano"
)

// Canonical resource keys.
const (
	KeyCPU     = "cpu"
	KeyMemory  = "memory"
	KeyStorage = "storage"
	KeyPods    = "pods"
)

const nanosPerCore = 1_000_000_000

// Quantity is a canonical resource measurement: cpu in nanocores, memory and storage in bytes,
// pod counts unitless.
type Quantity struct {
	Amount int64 `json:"amount"`
	Unit   Unit  `json:"unit"`
}

// List maps a canonical resource key to its quantity.
type List map[string]Quantity

// Resource holds the requests and limits of a pod or container.
type Resource struct {
	Requests List `json:"requests"`
	Limits   List `json:"limits"`
}

// CPU converts a quantity string such as "500m" or "2" to nanocores.
// Empty or unparsable input yields zero.
func CPU(value string) int64 {
	q, ok := parse(value)
	if !ok {
		return 0
	}

	return cpuNanos(q)
}

// Memory converts a quantity string such as "1Gi" or "512M" to bytes.
// Empty or unparsable input yields zero.
func Memory(value string) int64 {
	q, ok := parse(value)
	if !ok {
		return 0
	}

	return q.Value()
}

// Storage converts a storage quantity string to bytes.
func Storage(value string) int64 {
	return Memory(value)
}

// Pods converts a pod-count quantity string to a plain count.
func Pods(value string) int64 {
	q, ok := parse(value)
	if !ok {
		return 0
	}

	return q.Value()
}

// FromResourceList normalizes the quantities the engine tracks. Unknown keys are dropped.
func FromResourceList(list corev1.ResourceList) List {
	out := make(List, len(list))

	for name, q := range list {
		key, normalized, ok := normalize(name, q)
		if !ok {
			continue
		}

		out[key] = normalized
	}

	return out
}

// Bounded is a Resource whose requests and limits are both capped by list, as for what a
// node can hand out to pods.
func Bounded(list List) Resource {
	return Resource{
		Requests: list,
		Limits:   maps.Clone(list),
	}
}

func normalize(name corev1.ResourceName, q resource.Quantity) (string, Quantity, bool) {
	switch name {
	case corev1.ResourceCPU:
		return KeyCPU, Quantity{Amount: cpuNanos(q), Unit: UnitNano}, true
	case corev1.ResourceMemory:
		return KeyMemory, Quantity{Amount: q.Value(), Unit: UnitNone}, true
	case corev1.ResourceStorage:
		return KeyStorage, Quantity{Amount: q.Value(), Unit: UnitNone}, true
	case corev1.ResourcePods:
		return KeyPods, Quantity{Amount: q.Value(), Unit: UnitNone}, true
	default:
		return "", Quantity{}, false
	}
}

func parse(value string) (resource.Quantity, bool) {
	if value == "" {
		return resource.Quantity{}, false
	}

	q, err := resource.ParseQuantity(value)
	if err != nil {
		return resource.Quantity{}, false
	}

	return q, true
}

// cpuNanos multiplies cores by 1e9 and truncates toward zero.
func cpuNanos(q resource.Quantity) int64 {
	dec := new(inf.Dec).Set(q.AsDec())
	dec.Mul(dec, inf.NewDec(nanosPerCore, 0))
	dec.Round(dec, 0, inf.RoundDown)

	nanos, ok := dec.Unscaled()
	if !ok {
		return 0
	}

	return nanos
}
