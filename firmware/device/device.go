package device

import (
	"errors"
	"machine"
	"strconv"
	"time"

	"github.com/mmabey/hcsr04"
)

// Unit is the unit used when printing and displaying readings
type Unit int

const (
	UnitCentimeters Unit = iota
	UnitInches
)

func (u Unit) String() string {
	if u == UnitInches {
		return "in"
	}
	return "cm"
}

// Device exposes one HC-SR04 over USB serial. It owns the RangeFinder and
// the optional display for its lifetime
type Device struct {
	sensor  *hcsr04.RangeFinder
	display *display

	unit     Unit
	readings int

	startTime time.Time

	verbose bool
}

// New binds the sensor pins and, when configured, the display
func New(sensorCfg SensorConfig, displayCfg DisplayConfig) (Device, error) {
	if sensorCfg.Trigger == machine.NoPin || sensorCfg.Echo == machine.NoPin {
		return Device{}, errors.New("trigger and echo pins are required")
	}
	if sensorCfg.Trigger == sensorCfg.Echo {
		return Device{}, errors.New("trigger and echo must be distinct pins")
	}

	sensor, err := hcsr04.New(
		triggerPin{sensorCfg.Trigger},
		echoPin{sensorCfg.Echo},
		hcsr04.Config{Timeout: sensorCfg.Timeout},
	)
	if err != nil {
		return Device{}, errors.New("error binding sensor: " + err.Error())
	}

	var disp *display
	if displayCfg.Bus != nil {
		disp, err = newDisplay(displayCfg)
		if err != nil {
			return Device{}, errors.New("error configuring display: " + err.Error())
		}
	}

	return Device{
		sensor:    sensor,
		display:   disp,
		unit:      UnitCentimeters,
		startTime: time.Now(),
	}, nil
}

// MeasureOnce takes a single reading and reports it on serial and the display
func (d *Device) MeasureOnce() {
	m, err := d.sensor.Measure()
	if err != nil {
		println(d.ts(), "error:", err.Error())
		d.display.show("--")
		return
	}
	d.readings++

	value := m.Centimeters()
	if d.unit == UnitInches {
		value = m.Inches()
	}

	reading := formatDistance(value) + " " + d.unit.String()
	println("distance: " + reading)
	d.display.show(reading)

	if d.verbose {
		println(d.ts(), "echo pulse:", m.Duration().String())
	}
}

// Stream takes readings at the given interval until any byte arrives on
// serial. Each reading is an independent single-shot measurement
func (d *Device) Stream(interval time.Duration) {
	if d.verbose {
		println(d.ts(), "streaming every", interval.String())
	}

	for {
		d.MeasureOnce()
		time.Sleep(interval)

		if _, err := d.ReadByte(); err == nil {
			return
		}
	}
}

// SetTimeout changes the sensor's echo timeout. Zero restores the default
func (d *Device) SetTimeout(timeout time.Duration) {
	d.sensor.SetTimeout(timeout)
	if d.verbose {
		println(d.ts(), "timeout set to", d.sensor.Timeout().String())
	}
}

// ToggleUnit switches the reported unit between centimeters and inches
func (d *Device) ToggleUnit() {
	if d.unit == UnitCentimeters {
		d.unit = UnitInches
	} else {
		d.unit = UnitCentimeters
	}
	println(d.ts(), "unit:", d.unit.String())
}

// Debug prints out details of the Device's state
func (d *Device) Debug() {
	println(d.ts(), "timeout="+d.sensor.Timeout().String(),
		"unit="+d.unit.String(),
		"readings="+strconv.Itoa(d.readings))
}

// Verbose sets the Device to Verbose mode and increases logging
func (d *Device) Verbose() {
	d.verbose = true
	println(d.ts(), "Set Verbose Mode")
}

// ts returns the duration timestamp for logging
func (d *Device) ts() string {
	return "[" + time.Since(d.startTime).String() + "]"
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}

func (d *Device) WriteByte(b byte) error {
	return machine.Serial.WriteByte(b)
}

// formatDistance renders a distance with two decimal places. fmt is avoided
// here to keep the firmware binary small
func formatDistance(v float64) string {
	if v < 0 {
		return "-" + formatDistance(-v)
	}

	hundredths := int(v*100 + 0.5)
	whole := hundredths / 100
	frac := hundredths % 100

	s := strconv.Itoa(whole) + "."
	if frac < 10 {
		s += "0"
	}
	return s + strconv.Itoa(frac)
}
