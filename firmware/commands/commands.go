package commands

import (
	"errors"
	"time"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control a device
type Controller interface {
	MeasureOnce()
	Stream(interval time.Duration)
	SetTimeout(timeout time.Duration)
	ToggleUnit()
	Debug()
	Verbose()

	// I/O
	ReadByte() (byte, error)
}

var (
	MeasureCommand = &Command{
		Flag:      'M',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.MeasureOnce()
			return nil
		},
		Description: "Take a single distance reading.",
	}
	StreamCommand = &Command{
		Flag:      'S',
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			interval := 500 * time.Millisecond
			if input[0] != '0' {
				i := b2i(input[0])
				if i == 0 {
					return errors.New("invalid input: " + string(input))
				}
				interval = time.Duration(i) * 100 * time.Millisecond
			}

			c.Stream(interval)
			return nil
		},
		Description: "Stream readings until any byte is received. Input: interval in 100ms steps (1-9), or '0' for the 500ms default.",
	}
	TimeoutCommand = &Command{
		Flag:      'T',
		InputSize: 1,
		Run: func(c Controller, input []byte) error {
			if input[0] == '0' {
				// restore the driver default
				c.SetTimeout(0)
				return nil
			}

			i := b2i(input[0])
			if i == 0 {
				return errors.New("invalid input: " + string(input))
			}
			c.SetTimeout(time.Duration(i) * 100 * time.Millisecond)
			return nil
		},
		Description: "Set the echo timeout in 100ms steps. Input: 1-9, or '0' to restore the 1s default.",
	}
	UnitCommand = &Command{
		Flag:      'U',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.ToggleUnit()
			return nil
		},
		Description: "Toggle readings between centimeters and inches.",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			println("Available Commands:")
			for _, cmd := range commands {
				println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

func b2i(b byte) uint {
	v := uint(b - '0')
	if v < 1 || v > 9 {
		return 0
	}
	return v
}

var commands = []*Command{
	MeasureCommand,
	StreamCommand,
	TimeoutCommand,
	UnitCommand,
	DebugCommand,
	VerboseCommand,
}

func Run(c Controller) {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	for {
		cmdIn, err := c.ReadByte()
		if err != nil {
			continue
		}

		cmd, ok := cmdMap[cmdIn]
		if !ok {
			continue
		}

		in := make([]byte, cmd.InputSize)
		for i := 0; i < int(cmd.InputSize); {
			b, err := c.ReadByte()
			if err != nil {
				continue
			}

			in[i] = b
			i++
		}

		err = cmd.Run(c, in)
		if err != nil {
			println("error:", err.Error())
		}
	}
}
