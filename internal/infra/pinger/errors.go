package pinger

import "errors"

var (
	ErrNilPinger               = errors.New("pinger cannot be nil")
	ErrPingerAlreadyRegistered = errors.New("pinger already registered")
)
