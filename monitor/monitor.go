// Package monitor connects to the range finder firmware over USB serial,
// forwarding commands in and readings out.
package monitor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.bug.st/serial"
)

// Monitor is the host side of the firmware's serial command protocol
type Monitor struct {
	port io.ReadWriteCloser

	// OnReading, when set, is invoked for every distance line received
	// while Run is pumping output
	OnReading func(Reading)
}

// New opens the configured serial port
func New(cfg Config) (*Monitor, error) {
	if cfg.SerialPort == "" {
		return nil, errors.New("no serial port configured")
	}

	baud, err := strconv.Atoi(cfg.BaudRate)
	if err != nil {
		return nil, fmt.Errorf("invalid baud rate %q: %w", cfg.BaudRate, err)
	}

	port, err := serial.Open(cfg.SerialPort, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", cfg.SerialPort, err)
	}

	return &Monitor{port: port}, nil
}

// NewFromEnv opens the serial port named by the SERIAL_PORT and BAUD_RATE
// environment variables
func NewFromEnv() (*Monitor, error) {
	return New(NewConfigFromEnv())
}

// Run copies commands from in to the firmware and firmware output to out
// until in is exhausted, the port closes, or ctx is done. Distance lines
// are additionally parsed and handed to OnReading
func (m *Monitor) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	go func() {
		<-ctx.Done()
		m.Close()
	}()

	go func() {
		// command bytes go to the firmware as-is; it ignores what it
		// doesn't recognize
		_, _ = io.Copy(m.port, in)
	}()

	scanner := bufio.NewScanner(m.port)
	for scanner.Scan() {
		line := scanner.Text()

		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}

		if reading, ok := ParseReading(line); ok && m.OnReading != nil {
			m.OnReading(reading)
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error reading serial: %w", err)
	}
	return nil
}

// Send writes raw command bytes to the firmware
func (m *Monitor) Send(b []byte) error {
	_, err := m.port.Write(b)
	return err
}

// Close closes the serial port. Run returns once the port is closed
func (m *Monitor) Close() error {
	return m.port.Close()
}
