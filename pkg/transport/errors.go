package transport

import "errors"

var (
	// ErrNoResponse means the exchange finished without a response or an error.
	ErrNoResponse = errors.New("transport: no response received")
	// ErrDispatch wraps network, DNS, TLS and timeout failures.
	ErrDispatch = errors.New("transport: request dispatch failed")
)
