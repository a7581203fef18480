// Package hcsr04 drives the HC-SR04 ultrasonic range sensor.
//
// The sensor is pulsed on its Trig pin and answers with a high pulse on its
// Echo pin whose width is the round-trip time of the ultrasonic burst.
// Halving that time and multiplying by the speed of sound gives the distance
// to the nearest reflecting object.
package hcsr04

import (
	"fmt"
	"time"
)

const (
	// SpeedOfSoundCMPerS is the speed of sound in dry air at room
	// temperature. No environmental compensation is applied.
	SpeedOfSoundCMPerS = 34300.0

	// TriggerPulseWidth is the datasheet-mandated width of the trigger pulse.
	TriggerPulseWidth = 10 * time.Microsecond

	// triggerSettle holds the trigger low before pulsing so the sensor sees
	// a clean rising edge.
	triggerSettle = 2 * time.Microsecond

	// DefaultTimeout bounds how long a measurement waits for the echo pulse.
	// It also bounds the maximum measurable range.
	DefaultTimeout = 1 * time.Second
)

// TriggerPin is the digital output connected to the sensor's Trig pin.
type TriggerPin interface {
	// ConfigureOutput claims the pin as a digital output, initially low.
	ConfigureOutput() error
	Set(high bool)
}

// EchoPin is the digital input connected to the sensor's Echo pin.
type EchoPin interface {
	// ConfigureInput claims the pin as a digital input.
	ConfigureInput() error
	Get() bool
}

// Config has optional settings for a RangeFinder. The zero value uses
// defaults.
type Config struct {
	// Timeout is the maximum time to wait for each echo edge.
	// Defaults to DefaultTimeout.
	Timeout time.Duration
}

// RangeFinder owns one trigger/echo pin pair and produces single-shot
// distance readings on demand.
//
// A RangeFinder is not safe for concurrent use: a measurement blocks the
// caller for up to the configured timeout and no second measurement may be
// issued while one is in flight.
type RangeFinder struct {
	trigger TriggerPin
	echo    EchoPin
	timeout time.Duration

	released bool
}

// New binds a trigger and echo pin pair and configures them. The pins must
// be two distinct lines; the RangeFinder owns both exclusively until
// Release is called.
func New(trigger TriggerPin, echo EchoPin, cfg Config) (*RangeFinder, error) {
	if trigger == nil || echo == nil {
		return nil, fmt.Errorf("%w: trigger and echo pins are required", ErrConfigure)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	if err := trigger.ConfigureOutput(); err != nil {
		return nil, fmt.Errorf("%w: trigger pin: %v", ErrConfigure, err)
	}
	if err := echo.ConfigureInput(); err != nil {
		return nil, fmt.Errorf("%w: echo pin: %v", ErrConfigure, err)
	}

	trigger.Set(false)

	return &RangeFinder{
		trigger: trigger,
		echo:    echo,
		timeout: cfg.Timeout,
	}, nil
}

// With runs fn with a RangeFinder bound to the pins and guarantees Release
// on every exit path, including a panic inside fn.
func With(trigger TriggerPin, echo EchoPin, cfg Config, fn func(*RangeFinder) error) error {
	rf, err := New(trigger, echo, cfg)
	if err != nil {
		return err
	}
	defer rf.Release()

	return fn(rf)
}

// Measure performs one full measurement cycle and returns the echo pulse as
// a Measurement. It blocks for up to twice the configured timeout plus the
// trigger pulse width.
func (rf *RangeFinder) Measure() (Measurement, error) {
	if rf.released {
		return Measurement{}, ErrReleased
	}

	// Make sure the trigger is low and settled before pulsing. The trigger
	// and echo pulses never overlap, so the echo line is idle here.
	rf.trigger.Set(false)
	time.Sleep(triggerSettle)

	rf.trigger.Set(true)
	time.Sleep(TriggerPulseWidth)
	rf.trigger.Set(false)

	deadline := time.Now().Add(rf.timeout)
	for !rf.echo.Get() {
		if time.Now().After(deadline) {
			return Measurement{}, fmt.Errorf("waiting for echo to rise: %w", ErrTimeout)
		}
	}
	start := time.Now()

	deadline = start.Add(rf.timeout)
	for rf.echo.Get() {
		if time.Now().After(deadline) {
			return Measurement{}, fmt.Errorf("waiting for echo to fall: %w", ErrTimeout)
		}
	}
	timeOfFlight := time.Since(start)

	// The fall loop bounds timeOfFlight at timeout plus one poll iteration,
	// so anything past that, or a zero-width pulse, means a wiring fault or
	// electrical noise rather than a reading.
	if timeOfFlight <= 0 || timeOfFlight > rf.timeout {
		return Measurement{}, fmt.Errorf("%w: echo pulse of %v", ErrPulse, timeOfFlight)
	}

	return Measurement{timeOfFlight: timeOfFlight}, nil
}

// DistanceCM measures once and returns the distance in centimeters.
func (rf *RangeFinder) DistanceCM() (float64, error) {
	m, err := rf.Measure()
	if err != nil {
		return 0, err
	}
	return m.Centimeters(), nil
}

// SetTimeout changes the maximum time to wait for each echo edge.
// Non-positive values restore DefaultTimeout.
func (rf *RangeFinder) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	rf.timeout = d
}

// Timeout returns the configured echo timeout.
func (rf *RangeFinder) Timeout() time.Duration {
	return rf.timeout
}

// Release drives the trigger low and gives up both pins. It is idempotent;
// any Measure after Release fails with ErrReleased.
func (rf *RangeFinder) Release() {
	if rf.released {
		return
	}
	rf.trigger.Set(false)
	rf.released = true
}
