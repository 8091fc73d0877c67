package pinger

import "time"

// Status is the last known outcome of one pinger.
type Status struct {
	LastRun        time.Time     `json:"lastRun"`
	LastError      string        `json:"lastError,omitempty"`
	LastLatency    time.Duration `json:"lastLatency"`
	Successes      int           `json:"successes"`
	Failures       int           `json:"failures"`
	ReadyCritical  bool          `json:"readyCritical"`
	HealthCritical bool          `json:"healthCritical"`
}

func (s Status) ok() bool {
	return !s.LastRun.IsZero() && s.LastError == ""
}

type entry struct {
	pinger  Pinger
	timeout time.Duration
	status  Status
}
