package agent

import "errors"

var (
	ErrCreateWatch  = errors.New("create watch")
	ErrSnapshot     = errors.New("snapshot")
	ErrNotReady     = errors.New("agent is not ready")
	ErrStaleRun     = errors.New("last successful run is too old")
	ErrNextSnapshot = errors.New("compute next snapshot time")
)
