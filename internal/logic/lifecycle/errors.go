package lifecycle

import "errors"

var (
	ErrEmptyClusterID = errors.New("empty cluster id")
	ErrConnect        = errors.New("connect to cluster")
	ErrStartWatch     = errors.New("start watch")
	ErrSnapshot       = errors.New("cluster snapshot")
	ErrShuttingDown   = errors.New("lifecycle manager is shutting down")
)
