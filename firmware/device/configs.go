package device

import (
	"machine"
	"time"

	"tinygo.org/x/drivers"
)

// SensorConfig identifies the pins wired to the HC-SR04 and bounds how long
// a measurement waits for the echo
type SensorConfig struct {
	Trigger machine.Pin
	Echo    machine.Pin
	// Timeout defaults to the driver's 1s when zero
	Timeout time.Duration
}

// DisplayConfig has values for the optional ssd1306 readout. Leave Bus nil
// to run without a display
type DisplayConfig struct {
	Bus     drivers.I2C
	Width   int16
	Height  int16
	Address uint16
}
