package k8s

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

var (
	ErrNoConfig       = errors.New("no cluster connection configured")
	ErrUnexpectedType = errors.New("unexpected object type")
)

// StatusError carries the HTTP status of a failed API call so callers can classify
// it without importing apimachinery.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func (e *StatusError) StatusCode() int {
	return e.Code
}

// NotFoundError marks a missing object.
type NotFoundError struct {
	StatusError
}

func (e *NotFoundError) IsNotFound() {}

// wrapAPIError annotates err with op and, for API status errors, its HTTP code.
func wrapAPIError(op string, err error) error {
	var status apierrors.APIStatus
	if !errors.As(err, &status) {
		return fmt.Errorf("%s: %w", op, err)
	}

	code := int(status.Status().Code)
	if code == 0 {
		return fmt.Errorf("%s: %w", op, err)
	}

	if apierrors.IsNotFound(err) {
		return fmt.Errorf("%s: %w", op, &NotFoundError{StatusError{Code: code, Err: err}})
	}

	return fmt.Errorf("%s: %w", op, &StatusError{Code: code, Err: err})
}
