package hcsr04

import "time"

// Measurement is a single echo pulse, convertible to distance in various
// units. Measurements are ephemeral values and are not persisted or
// smoothed across calls.
type Measurement struct {
	timeOfFlight time.Duration
}

// Duration returns the raw echo pulse width, the round-trip time of the
// ultrasonic burst.
func (m Measurement) Duration() time.Duration {
	return m.timeOfFlight
}

// Centimeters converts the round-trip time to a one-way distance in
// centimeters.
func (m Measurement) Centimeters() float64 {
	return m.timeOfFlight.Seconds() * SpeedOfSoundCMPerS / 2
}

// Meters converts the round-trip time to a one-way distance in meters.
func (m Measurement) Meters() float64 {
	return m.Centimeters() / 100
}

// Inches converts the round-trip time to a one-way distance in inches.
func (m Measurement) Inches() float64 {
	return m.Centimeters() / 2.54
}
