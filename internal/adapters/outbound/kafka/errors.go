package kafka

import "errors"

var (
	ErrNoBrokers    = errors.New("no kafka brokers configured")
	ErrShuttingDown = errors.New("publisher is shutting down")
	ErrEncode       = errors.New("encode record")
)
