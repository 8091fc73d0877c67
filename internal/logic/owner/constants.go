package owner

import "time"

const (
	KindPod         = "Pod"
	KindDeployment  = "Deployment"
	KindReplicaSet  = "ReplicaSet"
	KindDaemonSet   = "DaemonSet"
	KindStatefulSet = "StatefulSet"
	KindJob         = "Job"
	KindCronJob     = "CronJob"

	// CoreGroup is reported for apiVersions without a group prefix.
	CoreGroup = "core"

	customWorkloadTTL      = 10 * time.Minute
	customWorkloadCapacity = 4096
	kindPluralTTL          = 10 * time.Minute

	// fallbackReplicas is the nominal replica count of custom workloads.
	fallbackReplicas = 1
)

// wellKnownKinds are resolved from the local mirror; anything else goes through the CRD path.
var wellKnownKinds = map[string]struct{}{
	KindDeployment:  {},
	KindReplicaSet:  {},
	KindDaemonSet:   {},
	KindStatefulSet: {},
	KindJob:         {},
	KindCronJob:     {},
}

// IsWellKnownKind reports whether kind is served by the local mirror.
func IsWellKnownKind(kind string) bool {
	_, ok := wellKnownKinds[kind]

	return ok
}

// permanentStatusCodes trip the custom resource breaker.
var permanentStatusCodes = map[int]struct{}{
	400: {},
	401: {},
	403: {},
	404: {},
}
