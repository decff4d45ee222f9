package ble

import "errors"

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// session's current state, e.g. Send before Connect.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrConnectionTimeout is returned when Connect exceeds its deadline.
	ErrConnectionTimeout = errors.New("connection timed out")

	// ErrConnectionFailure is returned for transport-level connect,
	// subscribe, write or disconnect failures.
	ErrConnectionFailure = errors.New("connection failure")

	// ErrNoDeviceFound is returned when scanning finds no matching device.
	ErrNoDeviceFound = errors.New("no devices found")
)
