package device

import "machine"

// triggerPin adapts a machine.Pin to the driver's TriggerPin interface
type triggerPin struct {
	pin machine.Pin
}

func (p triggerPin) ConfigureOutput() error {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.pin.Low()
	return nil
}

func (p triggerPin) Set(high bool) {
	p.pin.Set(high)
}

// echoPin adapts a machine.Pin to the driver's EchoPin interface. The pin is
// pulled down so a disconnected sensor reads as "no echo" instead of floating
type echoPin struct {
	pin machine.Pin
}

func (p echoPin) ConfigureInput() error {
	p.pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return nil
}

func (p echoPin) Get() bool {
	return p.pin.Get()
}
