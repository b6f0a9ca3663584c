package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/quadled/pkg/config"
	"github.com/itohio/quadled/pkg/hal"
)

// maxDistance is the range of the simulated target slider in cm.
const maxDistance = 400

var channelNames = map[hal.Channel]string{chanX: "X", chanY: "Y", chanZ: "Z"}

// createControls creates one slider per simulated input.
func createControls(sim *simulation, cfg *config.Config) []fyne.CanvasObject {
	var rows []fyne.CanvasObject

	for _, ch := range sim.channels {
		name := fmt.Sprintf("A%d", ch)
		if len(sim.channels) > 1 {
			name = channelNames[ch]
		}
		rows = append(rows, slider(name, 0, float64(cfg.Sampler.Max), float64(sim.sensor.SetPoint(ch)), func(v float64) {
			sim.sensor.Set(ch, uint16(v))
		}))
	}

	if sim.distance != nil {
		rows = append(rows, slider("cm", 0, maxDistance, float64(sim.distance.Load()), func(v float64) {
			sim.distance.Store(int32(v))
		}))
	}

	stall := widget.NewCheck("Stall ADC", sim.converter.Stall)
	stall.SetChecked(sim.converter.Stalled())
	rows = append(rows, stall)

	return rows
}

func slider(name string, lo, hi, value float64, onChanged func(float64)) fyne.CanvasObject {
	label := widget.NewLabel(fmt.Sprintf("%s %4.0f", name, value))
	s := widget.NewSlider(lo, hi)
	s.Step = 1
	s.SetValue(value)
	s.OnChanged = func(v float64) {
		label.SetText(fmt.Sprintf("%s %4.0f", name, v))
		onChanged(v)
	}
	return container.NewBorder(nil, nil, label, nil, s)
}
