package ui

import (
	"fmt"
	"io"
	"time"
)

// sensorWriter translates UI actions into the firmware's single-byte
// command protocol
type sensorWriter struct {
	writer io.Writer
}

func (s *sensorWriter) Measure() {
	fmt.Fprint(s.writer, "M")
}

func (s *sensorWriter) StartStream(interval time.Duration) {
	digit := int(interval / (100 * time.Millisecond))
	if digit < 1 || digit > 9 {
		// firmware default
		digit = 5
	}
	fmt.Fprintf(s.writer, "S%d", digit)
}

func (s *sensorWriter) StopStream() {
	// any byte ends a stream
	fmt.Fprint(s.writer, "\n")
}

func (s *sensorWriter) ToggleUnit() {
	fmt.Fprint(s.writer, "U")
}

func (s *sensorWriter) SetTimeout(tenths int) {
	fmt.Fprintf(s.writer, "T%d", tenths)
}
