package hcsr04

import (
	"errors"
	"testing"
	"time"
)

type levelChange struct {
	high bool
	at   time.Time
}

// mockSensor stands in for an HC-SR04: it implements both pin interfaces,
// records timestamped trigger transitions, and answers on the echo pin with
// a pulse scheduled relative to the trigger's falling edge.
type mockSensor struct {
	pulseDelay time.Duration // trigger falling edge -> echo rising edge
	pulseWidth time.Duration // echo high duration
	neverRise  bool
	neverFall  bool

	configureOutputErr error
	configureInputErr  error

	level       bool
	triggered   bool
	triggeredAt time.Time
	transitions []levelChange
}

func (s *mockSensor) ConfigureOutput() error { return s.configureOutputErr }
func (s *mockSensor) ConfigureInput() error  { return s.configureInputErr }

func (s *mockSensor) Set(high bool) {
	if high == s.level {
		return
	}
	if !high {
		s.triggered = true
		s.triggeredAt = time.Now()
	}
	s.level = high
	s.transitions = append(s.transitions, levelChange{high: high, at: time.Now()})
}

func (s *mockSensor) Get() bool {
	if !s.triggered || s.neverRise {
		return false
	}
	elapsed := time.Since(s.triggeredAt)
	if elapsed < s.pulseDelay {
		return false
	}
	if s.neverFall {
		return true
	}
	return elapsed < s.pulseDelay+s.pulseWidth
}

func TestMeasure(t *testing.T) {
	sensor := &mockSensor{
		pulseDelay: 500 * time.Microsecond,
		pulseWidth: 5 * time.Millisecond,
	}

	rf, err := New(sensor, sensor, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := rf.Measure()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The poll loop can only overshoot the simulated pulse, and only by
	// scheduler jitter.
	if m.Duration() < sensor.pulseWidth {
		t.Errorf("measured pulse %v is shorter than simulated %v", m.Duration(), sensor.pulseWidth)
	}
	if m.Duration() > sensor.pulseWidth+50*time.Millisecond {
		t.Errorf("measured pulse %v is far longer than simulated %v", m.Duration(), sensor.pulseWidth)
	}
}

func TestMeasureTimeout(t *testing.T) {
	timeout := 50 * time.Millisecond

	tests := []struct {
		name   string
		sensor *mockSensor
		// maxElapsed bounds total blocking time; the no-fall case waits out
		// the rise delay first
		maxElapsed time.Duration
	}{
		{
			"EchoNeverRises",
			&mockSensor{neverRise: true},
			timeout + 250*time.Millisecond,
		},
		{
			"EchoNeverFalls",
			&mockSensor{pulseDelay: time.Millisecond, neverFall: true},
			time.Millisecond + timeout + 250*time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf, err := New(tt.sensor, tt.sensor, Config{Timeout: timeout})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			start := time.Now()
			_, err = rf.Measure()
			elapsed := time.Since(start)

			if !errors.Is(err, ErrTimeout) {
				t.Errorf("expected ErrTimeout, got: %v", err)
			}
			if elapsed < timeout {
				t.Errorf("gave up after %v, before the %v timeout", elapsed, timeout)
			}
			if elapsed > tt.maxElapsed {
				t.Errorf("blocked for %v, well past the %v timeout", elapsed, timeout)
			}
		})
	}
}

func TestTriggerPulseWidth(t *testing.T) {
	sensor := &mockSensor{
		pulseDelay: 100 * time.Microsecond,
		pulseWidth: time.Millisecond,
	}

	rf, err := New(sensor, sensor, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rf.Measure(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sensor.transitions) != 2 {
		t.Fatalf("expected 2 trigger transitions, got %d", len(sensor.transitions))
	}
	rise, fall := sensor.transitions[0], sensor.transitions[1]
	if !rise.high || fall.high {
		t.Fatalf("expected a rising then falling trigger edge")
	}

	width := fall.at.Sub(rise.at)
	if width < TriggerPulseWidth {
		t.Errorf("trigger pulse of %v is shorter than the mandated %v", width, TriggerPulseWidth)
	}
	// time.Sleep only guarantees a lower bound; allow generous scheduler
	// jitter above it
	if width > 10*time.Millisecond {
		t.Errorf("trigger pulse of %v is far wider than the mandated %v", width, TriggerPulseWidth)
	}
}

func TestNewConfigureErrors(t *testing.T) {
	boom := errors.New("pin already in use")

	tests := []struct {
		name    string
		trigger TriggerPin
		echo    EchoPin
	}{
		{"NilTrigger", nil, &mockSensor{}},
		{"NilEcho", &mockSensor{}, nil},
		{"TriggerClaimFails", &mockSensor{configureOutputErr: boom}, &mockSensor{}},
		{"EchoClaimFails", &mockSensor{}, &mockSensor{configureInputErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.trigger, tt.echo, Config{})
			if !errors.Is(err, ErrConfigure) {
				t.Errorf("expected ErrConfigure, got: %v", err)
			}
		})
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	sensor := &mockSensor{pulseWidth: time.Millisecond}

	rf, err := New(sensor, sensor, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rf.Release()
	rf.Release()

	if _, err := rf.Measure(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased after Release, got: %v", err)
	}
	if _, err := rf.DistanceCM(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased after Release, got: %v", err)
	}
}

func TestWithReleasesOnFailure(t *testing.T) {
	sensor := &mockSensor{pulseWidth: time.Millisecond}
	boom := errors.New("boom")

	var rf *RangeFinder
	err := With(sensor, sensor, Config{}, func(inner *RangeFinder) error {
		rf = inner
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected fn error to propagate, got: %v", err)
	}

	if _, err := rf.Measure(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased after With, got: %v", err)
	}
}

func TestWithReleasesOnPanic(t *testing.T) {
	sensor := &mockSensor{pulseWidth: time.Millisecond}

	var rf *RangeFinder
	func() {
		defer func() { _ = recover() }()
		_ = With(sensor, sensor, Config{}, func(inner *RangeFinder) error {
			rf = inner
			panic("mid-measurement failure")
		})
		t.Errorf("did not panic")
	}()

	if _, err := rf.Measure(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased after panic, got: %v", err)
	}
}

func TestSetTimeout(t *testing.T) {
	sensor := &mockSensor{pulseWidth: time.Millisecond}

	rf, err := New(sensor, sensor, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rf.Timeout() != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, rf.Timeout())
	}

	rf.SetTimeout(200 * time.Millisecond)
	if rf.Timeout() != 200*time.Millisecond {
		t.Errorf("expected 200ms timeout, got %v", rf.Timeout())
	}

	rf.SetTimeout(0)
	if rf.Timeout() != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, rf.Timeout())
	}
}
