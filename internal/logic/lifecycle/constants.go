package lifecycle

import "time"

const (
	// sideCacheSyncInterval times sideCacheSyncAttempts bounds the bootstrap wait.
	sideCacheSyncInterval = 300 * time.Millisecond
	sideCacheSyncAttempts = 25

	kindNode   = "node"
	kindPV     = "persistentvolume"
	kindPod    = "pod"
	kubeSystem = "kube-system"
)
