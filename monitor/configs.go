package monitor

import (
	"errors"
	"os"
	"strings"

	"go.bug.st/serial"
)

// SerialPortNone disables the serial connection, which is useful for
// exercising the UI without a board attached
const SerialPortNone = "none"

var ErrNoUSBSerial = errors.New("no USB serial ports found")

// Config connects the monitor to the firmware's USB serial port
type Config struct {
	SerialPort string
	BaudRate   string
}

// NewConfigFromEnv reads SERIAL_PORT and BAUD_RATE from the environment.
// BAUD_RATE defaults to 115200
func NewConfigFromEnv() Config {
	cfg := Config{
		SerialPort: os.Getenv("SERIAL_PORT"),
		BaudRate:   os.Getenv("BAUD_RATE"),
	}
	if cfg.BaudRate == "" {
		cfg.BaudRate = "115200"
	}
	return cfg
}

// GetSerialPorts lists connected USB serial ports
func GetSerialPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}

	var usbPorts []string
	for _, port := range ports {
		name := strings.ToLower(port)
		if strings.Contains(name, "usb") || strings.Contains(name, "acm") {
			usbPorts = append(usbPorts, port)
		}
	}

	if len(usbPorts) == 0 {
		return nil, ErrNoUSBSerial
	}
	return usbPorts, nil
}
