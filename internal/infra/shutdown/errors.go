package shutdown

import "errors"

// ErrTerminating is returned when the process starts inside a terminating pod.
var ErrTerminating = errors.New("termination file found")
