package owner

import "errors"

var (
	ErrBreakerOpen     = errors.New("custom resource lookups disabled")
	ErrGetCustomObject = errors.New("get custom object")
)
