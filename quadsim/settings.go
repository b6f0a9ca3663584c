package main

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/relay"
)

// showSettingsDialog displays a settings dialog with tabs for the configuration.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createFilterTab(state),
		createDisplayTab(state),
		createModeTab(state),
		createMockTab(state),
	)

	d := dialog.NewCustom("Settings", "Close", tabs, state.window)
	d.Resize(fyne.NewSize(480, 400))
	d.Show()
}

// apply validates and saves the configuration, then restarts the program.
func apply(state *appState) {
	if err := state.cfg.Validate(); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	if err := state.cfg.Save(state.configFile); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return
	}
	state.restart()
}

func intEntry(v int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.Itoa(v))
	return e
}

func durationEntry(d time.Duration) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(d.String())
	return e
}

func parseInto[T ~int | ~uint16 | ~uint64](e *widget.Entry, dst *T) {
	if v, err := strconv.Atoi(e.Text); err == nil && v >= 0 {
		*dst = T(v)
	}
}

func parseDuration(e *widget.Entry, dst *time.Duration) {
	if d, err := time.ParseDuration(e.Text); err == nil {
		*dst = d
	}
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	ports, err := relay.Ports()
	portOptions := []string{}
	portMap := make(map[string]string)

	if err == nil {
		for _, port := range ports {
			display := port.Name
			if port.Description != "" && port.Description != port.Name {
				display = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, display)
			portMap[display] = port.Name
		}
	}

	current := state.cfg.Serial.Port
	selected := ""
	for _, opt := range portOptions {
		if portMap[opt] == current {
			selected = opt
		}
	}
	if selected == "" && current != "" {
		portOptions = append(portOptions, current)
		portMap[current] = current
		selected = current
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if selected != "" {
		portSelect.SetSelected(selected)
	}
	baud := intEntry(state.cfg.Serial.BaudRate)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baud},
		},
		OnSubmit: func() {
			if port := portMap[portSelect.Selected]; port != "" {
				state.cfg.Serial.Port = port
			}
			parseInto(baud, &state.cfg.Serial.BaudRate)
			apply(state)
		},
	}

	return container.NewTabItem("Serial", form)
}

// createFilterTab creates the Filter configuration tab.
func createFilterTab(state *appState) *container.TabItem {
	opts := &state.cfg.Filter

	kind := widget.NewSelect([]string{
		filter.KindAverage, filter.KindMedian, filter.KindMedian3, filter.KindMean, filter.KindNone,
	}, nil)
	kind.SetSelected(opts.Kind)

	even := widget.NewSelect([]string{"average", "lower", "upper"}, nil)
	even.SetSelected(opts.Even)

	weight := intEntry(int(opts.Weight))
	samples := intEntry(opts.Samples)
	band := intEntry(int(opts.Band))
	settle := durationEntry(opts.Settle)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Kind", Widget: kind},
			{Text: "Weight", Widget: weight, HintText: "average"},
			{Text: "Samples", Widget: samples, HintText: "median, mean"},
			{Text: "Band", Widget: band, HintText: "median, median3, mean"},
			{Text: "Even Samples", Widget: even, HintText: "median"},
			{Text: "Settle", Widget: settle, HintText: "median"},
		},
		OnSubmit: func() {
			opts.Kind = kind.Selected
			opts.Even = even.Selected
			parseInto(weight, &opts.Weight)
			parseInto(samples, &opts.Samples)
			parseInto(band, &opts.Band)
			parseDuration(settle, &opts.Settle)
			apply(state)
		},
	}

	return container.NewTabItem("Filter", form)
}

// createDisplayTab creates the Display configuration tab.
func createDisplayTab(state *appState) *container.TabItem {
	dwell := durationEntry(state.cfg.Display.Dwell)
	refresh := durationEntry(state.cfg.Display.Refresh)
	overflow := widget.NewSelect([]string{"clamp", "dashes"}, nil)
	overflow.SetSelected(state.cfg.Display.Overflow)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Dwell", Widget: dwell},
			{Text: "Overflow", Widget: overflow},
			{Text: "Refresh", Widget: refresh},
		},
		OnSubmit: func() {
			parseDuration(dwell, &state.cfg.Display.Dwell)
			parseDuration(refresh, &state.cfg.Display.Refresh)
			state.cfg.Display.Overflow = overflow.Selected
			apply(state)
		},
	}

	return container.NewTabItem("Display", form)
}

// createModeTab creates the Mode configuration tab.
func createModeTab(state *appState) *container.TabItem {
	tick := durationEntry(state.cfg.Mode.Tick)
	cycle := intEntry(state.cfg.Mode.CycleTicks)
	debounce := intEntry(state.cfg.Mode.DebounceTicks)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Tick", Widget: tick},
			{Text: "Cycle Ticks", Widget: cycle},
			{Text: "Debounce Ticks", Widget: debounce},
		},
		OnSubmit: func() {
			parseDuration(tick, &state.cfg.Mode.Tick)
			parseInto(cycle, &state.cfg.Mode.CycleTicks)
			parseInto(debounce, &state.cfg.Mode.DebounceTicks)
			apply(state)
		},
	}

	return container.NewTabItem("Mode", form)
}

// createMockTab creates the simulated sensor configuration tab.
func createMockTab(state *appState) *container.TabItem {
	mock := &state.cfg.Mock

	noise := widget.NewEntry()
	noise.SetText(strconv.FormatFloat(mock.Noise, 'f', -1, 64))
	wobble := widget.NewEntry()
	wobble.SetText(strconv.FormatFloat(mock.Wobble, 'f', -1, 64))
	period := intEntry(mock.Period)
	seed := intEntry(int(mock.Seed))
	rate := durationEntry(mock.SampleRate)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Noise", Widget: noise},
			{Text: "Wobble", Widget: wobble},
			{Text: "Period", Widget: period},
			{Text: "Seed", Widget: seed},
			{Text: "Sample Rate", Widget: rate},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(noise.Text, 64); err == nil {
				mock.Noise = v
			}
			if v, err := strconv.ParseFloat(wobble.Text, 64); err == nil {
				mock.Wobble = v
			}
			parseInto(period, &mock.Period)
			parseInto(seed, &mock.Seed)
			parseDuration(rate, &mock.SampleRate)
			apply(state)
		},
	}

	return container.NewTabItem("Mock", form)
}
