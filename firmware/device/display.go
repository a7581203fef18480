package device

import (
	"image/color"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

var white = color.RGBA{255, 255, 255, 255}

// display renders the latest reading on an ssd1306 over I2C
type display struct {
	dev    ssd1306.Device
	height int16
}

func newDisplay(cfg DisplayConfig) (*display, error) {
	dev := ssd1306.NewI2C(cfg.Bus)
	dev.Configure(ssd1306.Config{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Address:  cfg.Address,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()

	return &display{dev: dev, height: cfg.Height}, nil
}

// show replaces the display contents with the given text. A nil display
// swallows the call so the Device does not have to care whether one is wired
func (d *display) show(text string) {
	if d == nil {
		return
	}

	d.dev.ClearBuffer()
	tinyfont.WriteLine(&d.dev, &freemono.Regular9pt7b, 4, d.height/2+4, text, white)
	d.dev.Display()
}
