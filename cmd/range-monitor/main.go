package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/mmabey/hcsr04/monitor"
	"github.com/mmabey/hcsr04/ui"
)

func main() {
	cfg := monitor.NewConfigFromEnv()
	flag.StringVar(&cfg.SerialPort, "port", cfg.SerialPort, "Serial port of the range finder firmware (default $SERIAL_PORT)")
	flag.StringVar(&cfg.BaudRate, "baud", cfg.BaudRate, "Baud rate (default $BAUD_RATE or 115200)")
	flag.Parse()

	if os.Getenv("ENABLE_UI") == "true" {
		runUI(cfg)
		return
	}

	runCLI(cfg)
}

func runUI(cfg monitor.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rangeUI := ui.NewRangeUI()

	var c *monitor.Monitor
	rangeUI.Run(ctx, &cfg, func(cfg monitor.Config) (io.Writer, error) {
		if cfg.SerialPort == monitor.SerialPortNone {
			return io.Discard, nil
		}

		var err error
		c, err = monitor.New(cfg)
		if err != nil {
			return nil, err
		}

		r, w := io.Pipe()

		// read from Stdin also
		go func() {
			defer w.Close()
			io.Copy(w, os.Stdin)
		}()

		go func() {
			err := c.Run(ctx, r, io.MultiWriter(os.Stdout, rangeUI))
			if err != nil {
				panic(err)
			}
		}()

		return w, nil
	})
	cancel()

	if c != nil {
		c.Close()
	}
}

func runCLI(cfg monitor.Config) {
	c, err := monitor.New(cfg)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	err = c.Run(context.Background(), os.Stdin, os.Stdout)
	if err != nil {
		panic(err)
	}
}
