package main

import (
	"fmt"
	"sync/atomic"

	"github.com/itohio/quadled/pkg/accel"
	"github.com/itohio/quadled/pkg/alarm"
	"github.com/itohio/quadled/pkg/board"
	"github.com/itohio/quadled/pkg/config"
	"github.com/itohio/quadled/pkg/display"
	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/mode"
	"github.com/itohio/quadled/pkg/relay"
)

// Simulated boards.
const (
	programPot   = "pot"
	programAccel = "accel"
	programTx    = "tx"
	programRx    = "rx"
	programRange = "range"
)

// simBusyPolls is how long a simulated conversion keeps the converter busy.
const simBusyPolls = 2

var programs = []string{programPot, programAccel, programTx, programRx, programRange}

// Accelerometer axes in the simulated front end.
const (
	chanX hal.Channel = 0
	chanY hal.Channel = 1
	chanZ hal.Channel = 2
)

// simulation is one or more board programs plus their interrupt sources.
type simulation struct {
	programs []board.Program
	sensor    *hal.SimSampler
	converter *hal.SimConverter
	channels  []hal.Channel // sensor channels with a slider

	tick   func()
	press  func()
	preset func()

	// rx receives frames from the link, nil when the program doesn't listen.
	rx *relay.Receiver
	// out is where transmitting programs send.
	out *linkSender
	// distance is the simulated target of the range finder in cm.
	distance *atomic.Int32

	showcase func()
}

func newFilterFactory(cfg *config.Config) func() (filter.Filter, error) {
	return func() (filter.Filter, error) {
		return filter.New(cfg.Filter, nil)
	}
}

func overflowPolicy(s string) display.Overflow {
	if s == "dashes" {
		return display.Dashes
	}
	return display.Clamp
}

// buildSimulation wires program kind to bank.
func buildSimulation(cfg *config.Config, kind string, bank hal.DigitalOutputBank) (*simulation, error) {
	mux := display.New(bank, display.Options{
		Digits:   cfg.Display.Digits,
		Dwell:    cfg.Display.Dwell,
		Overflow: overflowPolicy(cfg.Display.Overflow),
	})
	sensor := hal.NewSimSampler(cfg.Sampler.Max, cfg.Mock.Noise, cfg.Mock.Wobble, cfg.Mock.Period, cfg.Mock.Seed)
	converter := hal.NewSimConverter(sensor, simBusyPolls)
	adc := hal.NewBlockingSampler(converter, cfg.Sampler.Retries)
	newFilter := newFilterFactory(cfg)
	nop := func() {}

	sim := &simulation{
		sensor:    sensor,
		converter: converter,
		tick:      nop,
		press:     nop,
		preset:    nop,
		out:       &linkSender{},
	}

	switch kind {
	case programPot:
		ch := hal.Channel(cfg.Sampler.Channel)
		sensor.Set(ch, cfg.Mock.SetPoint)
		f, err := newFilter()
		if err != nil {
			return nil, err
		}
		sim.programs = []board.Program{board.NewPotDisplay(adc, ch, f, mux, display.NoPoint)}
		sim.channels = []hal.Channel{ch}

	case programAccel:
		for _, ch := range []hal.Channel{chanX, chanY, chanZ} {
			sensor.Set(ch, cfg.Accel.Zero)
		}
		cycler := mode.NewAxisCycler(cfg.Mode.CycleTicks, cfg.Mode.DebounceTicks)
		conv := accel.GConverter{Zero: cfg.Accel.Zero, CountsPerG: cfg.Accel.CountsPerG}
		a, err := board.NewAccelDisplay(adc, newFilter, cycler, conv, mux)
		if err != nil {
			return nil, err
		}
		sim.programs = []board.Program{a}
		sim.channels = []hal.Channel{chanX, chanY, chanZ}
		sim.tick = a.Tick
		sim.press = a.Press

	case programTx:
		ch := hal.Channel(cfg.Sampler.Channel)
		sensor.Set(ch, cfg.Mock.SetPoint)
		f, err := newFilter()
		if err != nil {
			return nil, err
		}
		local, err := newFilter()
		if err != nil {
			return nil, err
		}
		tx := board.NewTransmitter(adc, ch, f, sim.out, relay.KeyADC)
		tx.MinDelta = cfg.Relay.MinDelta
		tx.Quantize = cfg.Relay.Quantize
		// One loop, as on the board: both share the converter.
		sim.programs = []board.Program{board.Programs{tx, board.NewPotDisplay(adc, ch, local, mux, display.NoPoint)}}
		sim.channels = []hal.Channel{ch}

	case programRx:
		rx := relay.NewReceiver(cfg.Relay.IdleTicks, nil)
		r := board.NewReceiver(rx, relay.KeyADC, mux)
		r.LowCut = cfg.Relay.LowCut
		r.HighCut = cfg.Relay.HighCut
		r.Full = int(cfg.Sampler.Max)
		sim.programs = []board.Program{r}
		sim.rx = rx
		sim.tick = rx.Tick

	case programRange:
		if err := buildRange(cfg, sim, adc, mux, newFilter); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unknown program %q", kind)
	}

	return sim, nil
}

// buildRange simulates both boards of the range finder: the sensing board
// sends over a loopback to the display board.
func buildRange(cfg *config.Config, sim *simulation, adc hal.Sampler, mux *display.Multiplexer, newFilter func() (filter.Filter, error)) error {
	presets, err := alarm.NewPresets(cfg.Alarm.Presets, cfg.Alarm.Periods)
	if err != nil {
		return err
	}
	level := alarm.Level{
		Center:    cfg.Alarm.LevelCenter,
		Tolerance: cfg.Alarm.LevelTolerance,
		Period:    cfg.Alarm.LevelPeriod,
	}
	fx, err := newFilter()
	if err != nil {
		return err
	}
	fy, err := newFilter()
	if err != nil {
		return err
	}
	fx.Reset(uint16(level.Center))
	fy.Reset(uint16(level.Center))
	for _, ch := range []hal.Channel{chanX, chanY} {
		sim.sensor.Set(ch, uint16(level.Center))
	}

	disp := board.NewRangeDisplay(cfg.Relay.IdleTicks, level, cfg.Alarm.Presets, mux)
	sim.out.local = disp.Receiver()

	echo := &alarm.EchoCapture{}
	sim.distance = &atomic.Int32{}
	sim.distance.Store(int32(cfg.Alarm.Presets[0]))

	finder := board.NewRangeFinder(board.RangeFinderOptions{
		Trigger: &simTrigger{echo: echo, cm: sim.distance},
		Echo:    echo,
		Sampler: adc,
		X:       chanX,
		Y:       chanY,
		FilterX: fx,
		FilterY: fy,
		Buzzer:  &logBuzzer{},
		Out:     sim.out,
		Presets: presets,
		Level:   level,
	})

	sim.programs = []board.Program{finder, disp}
	sim.channels = []hal.Channel{chanX, chanY}
	sim.press = finder.PressMode
	sim.preset = finder.PressPreset
	sim.tick = disp.Receiver().Tick
	sim.showcase = func() { disp.Showcase(cfg.Alarm.Showcase) }
	return nil
}

// simTrigger answers every trigger pulse with an echo from the simulated
// target distance.
type simTrigger struct {
	echo *alarm.EchoCapture
	cm   *atomic.Int32
	now  uint16
}

func (t *simTrigger) Pulse() {
	t.now += 1000
	t.echo.Edge(t.now)
	t.now += uint16(int(t.cm.Load()) * alarm.MicrosPerCm)
	t.echo.Edge(t.now)
}
