package main

import (
	"machine"
	"time"

	"github.com/mmabey/hcsr04/firmware/commands"
	"github.com/mmabey/hcsr04/firmware/device"
)

func main() {
	sensorCfg := device.SensorConfig{
		Trigger: machine.GP2,
		Echo:    machine.GP3,
		Timeout: 1 * time.Second,
	}

	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	displayCfg := device.DisplayConfig{
		Bus:     machine.I2C0,
		Width:   128,
		Height:  64,
		Address: 0x3C,
	}

	d, err := device.New(sensorCfg, displayCfg)
	if err != nil {
		panic(err)
	}

	commands.Run(&d)
}
