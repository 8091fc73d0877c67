package config

import "errors"

var (
	ErrRequired    = errors.New("required value is empty")
	ErrTooSmall    = errors.New("value below minimum")
	ErrInvalidPort = errors.New("invalid port")
)
