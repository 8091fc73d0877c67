package lookup

import "errors"

var (
	ErrNoStorageClass  = errors.New("no storage class set")
	ErrGetNamespace    = errors.New("get namespace")
	ErrGetClaim        = errors.New("get persistent volume claim")
	ErrGetStorageClass = errors.New("get storage class")
)
