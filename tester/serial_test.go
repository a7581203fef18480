package main_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"go.bug.st/serial"
)

// These tests exercise a board that is already flashed with the firmware.
// Set SERIAL_PORT to run them.

func sendSerial(t *testing.T, port, in string, expectedLen int) string {
	t.Helper()
	mode := &serial.Mode{
		BaudRate: 115200,
	}

	p, err := serial.Open(port, mode)
	if err != nil {
		t.Errorf("unexpected error opening serial connection: %v", err)
		return ""
	}
	defer p.Close()

	_, err = p.Write([]byte(in))
	if err != nil {
		t.Errorf("unexpected error writing serial: %v", err)
		return ""
	}
	time.Sleep(100 * time.Millisecond)

	buf := make([]byte, expectedLen)
	total := 0
	p.SetReadTimeout(1 * time.Second)
	deadline := time.Now().Add(2 * time.Second)
	for total < expectedLen && time.Now().Before(deadline) {
		n, err := p.Read(buf[total:])
		if err != nil {
			t.Errorf("unexpected error reading serial: %v", err)
			return ""
		}
		total += n
	}
	return string(buf[:total])
}

func TestSerial(t *testing.T) {
	port := os.Getenv("SERIAL_PORT")
	if port == "" {
		t.Skip("SERIAL_PORT not set; skipping on-device tests")
	}

	tests := []struct {
		name        string
		in          string
		expectedLen int
		contains    []string
	}{
		{
			"Debug",
			"D",
			64,
			[]string{"timeout=1s", "unit=cm", "readings="},
		},
		{
			"Help",
			"H",
			512,
			[]string{"Available Commands:", "M: Take a single distance reading."},
		},
		{
			"ToggleUnitsAndBack",
			"UU",
			64,
			[]string{"unit: in", "unit: cm"},
		},
		{
			"MeasureOnce",
			"M",
			64,
			// a reading or a timeout, depending on what the sensor sees
			[]string{": "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sendSerial(t, port, tt.in, tt.expectedLen)
			clean := strings.Trim(out, "\x00")
			for _, want := range tt.contains {
				if !strings.Contains(clean, want) {
					t.Errorf("expected output to contain %q, got=%q", want, clean)
				}
			}
		})
	}
}
