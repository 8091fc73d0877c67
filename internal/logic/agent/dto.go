package agent

import "time"

type Status struct {
	ClusterID     string    `json:"clusterId"`
	LastRunOK     time.Time `json:"lastRunOk"`
	LastError     string    `json:"lastError,omitempty"`
	LastSnapshot  time.Time `json:"lastSnapshot"`
	NextSnapshot  time.Time `json:"nextSnapshot"`
	SnapshotsSent int       `json:"snapshotsSent"`
}
