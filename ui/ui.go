// Package ui is a live fyne readout for the range finder firmware.
package ui

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/mmabey/hcsr04/monitor"
)

var streamIntervals = []string{"100ms", "200ms", "300ms", "500ms", "900ms"}

// RangeUI shows the latest distance reading with min/max tracking and a
// staleness timer. It implements io.Writer so it can sit on the monitor's
// output via io.MultiWriter.
type RangeUI struct {
	mtx     sync.Mutex
	lineBuf []byte

	distanceText *canvas.Text
	minMaxLabel  *widget.Label
	staleTimer   *timer

	unit     string
	min, max float64
}

func NewRangeUI() *RangeUI {
	distanceText := canvas.NewText("-- cm", nil)
	distanceText.TextSize = 42

	return &RangeUI{
		distanceText: distanceText,
		minMaxLabel:  widget.NewLabel("min -- / max --"),
		staleTimer:   newTimer(true),
		min:          math.Inf(1),
		max:          math.Inf(-1),
	}
}

// Write receives monitor output and updates the readout with every
// distance line it contains. Other output passes through untouched.
func (ui *RangeUI) Write(p []byte) (int, error) {
	ui.mtx.Lock()
	defer ui.mtx.Unlock()

	ui.lineBuf = append(ui.lineBuf, p...)
	for {
		i := bytes.IndexByte(ui.lineBuf, '\n')
		if i < 0 {
			break
		}
		line := string(ui.lineBuf[:i])
		ui.lineBuf = ui.lineBuf[i+1:]

		if reading, ok := monitor.ParseReading(line); ok {
			ui.apply(reading)
		}
	}

	return len(p), nil
}

func (ui *RangeUI) apply(reading monitor.Reading) {
	if reading.Unit != ui.unit {
		// min/max in the old unit are meaningless after a unit toggle
		ui.unit = reading.Unit
		ui.min = math.Inf(1)
		ui.max = math.Inf(-1)
	}
	ui.min = math.Min(ui.min, reading.Distance)
	ui.max = math.Max(ui.max, reading.Distance)
	minMax := fmt.Sprintf("min %.2f / max %.2f %s", ui.min, ui.max, ui.unit)

	ui.staleTimer.Set(time.Now())

	fyne.Do(func() {
		ui.distanceText.Text = reading.String()
		ui.distanceText.Refresh()
		ui.minMaxLabel.SetText(minMax)
	})
}

func (ui *RangeUI) resetMinMax() {
	ui.mtx.Lock()
	ui.min = math.Inf(1)
	ui.max = math.Inf(-1)
	ui.mtx.Unlock()
	ui.minMaxLabel.SetText("min -- / max --")
}

// Run shows the configuration window, then the live readout once connect
// returns the firmware command writer. It blocks until the app exits.
func (ui *RangeUI) Run(ctx context.Context, cfg *monitor.Config, connect func(monitor.Config) (io.Writer, error)) {
	application := app.New()

	configWindow := NewConfigWindow(application)
	configWindow.OnSubmit = func() {
		w, err := connect(*cfg)
		if err != nil {
			errWindow := application.NewWindow("Range Finder - Error")
			errWindow.Show()
			showError(application, errWindow, err)
			return
		}
		ui.showReadout(application, w)
	}
	configWindow.Show(cfg)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			application.Quit()
		})
	}()

	application.Run()
}

func (ui *RangeUI) showReadout(application fyne.App, w io.Writer) {
	window := application.NewWindow("Range Finder")

	sensor := &sensorWriter{writer: w}

	started := make(chan struct{})
	close(started)
	ui.staleTimer.Set(time.Now())
	ui.staleTimer.Go(started)
	ui.staleTimer.text.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}

	measureButton := widget.NewButton("Measure", sensor.Measure)

	intervalSelect := widget.NewSelect(streamIntervals, nil)
	intervalSelect.SetSelected("500ms")

	streaming := false
	var streamButton *widget.Button
	streamButton = widget.NewButton("Start Stream", func() {
		if streaming {
			sensor.StopStream()
			streamButton.SetText("Start Stream")
		} else {
			interval, err := time.ParseDuration(intervalSelect.Selected)
			if err != nil {
				interval = 500 * time.Millisecond
			}
			sensor.StartStream(interval)
			streamButton.SetText("Stop Stream")
		}
		streaming = !streaming
	})

	unitButton := widget.NewButton("cm/in", sensor.ToggleUnit)
	resetButton := widget.NewButton("Reset Min/Max", ui.resetMinMax)

	contentContainer := container.NewVBox(
		container.NewHBox(
			container.NewPadded(ui.distanceText),
			layout.NewSpacer(),
			container.NewPadded(ui.staleTimer.text),
		),
		ui.minMaxLabel,
		container.NewGridWithColumns(3,
			measureButton,
			streamButton,
			unitButton,
		),
		container.NewGridWithColumns(3,
			widget.NewLabel("Interval:"),
			intervalSelect,
			resetButton,
		),
	)

	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(380, 240))
	window.Show()
}
