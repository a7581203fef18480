package hcsr04

import "errors"

var (
	// ErrConfigure means a pin could not be claimed or configured when
	// binding the RangeFinder.
	ErrConfigure = errors.New("pin configuration failed")

	// ErrTimeout means no echo edge was observed within the configured
	// timeout: the sensor is unresponsive, nothing is in range, or the
	// wiring is wrong. The caller may retry; the driver never does.
	ErrTimeout = errors.New("timed out waiting for echo")

	// ErrPulse means the echo pulse width was outside physically plausible
	// bounds, which usually indicates a wiring fault or electrical noise.
	ErrPulse = errors.New("implausible echo pulse")

	// ErrReleased means the RangeFinder was used after Release.
	ErrReleased = errors.New("range finder has been released")
)
