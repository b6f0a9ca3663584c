//go:build tinygo

//go:generate tinygo flash -target=arduino-nano33

package main

import (
	"machine"
	"time"

	"github.com/itohio/quadled/pkg/accel"
	"github.com/itohio/quadled/pkg/alarm"
	"github.com/itohio/quadled/pkg/board"
	"github.com/itohio/quadled/pkg/display"
	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/mode"
	"github.com/itohio/quadled/pkg/relay"
)

var uart = machine.UART0

// Analog channels, in the order their pins are given to the converter.
const (
	chanX hal.Channel = iota
	chanY
	chanZ
)

func main() {
	uart.Configure(machine.UARTConfig{BaudRate: UART_BAUD_RATE})

	mux := display.New(newPinBank(PIN_SEGMENTS, PIN_DIGITS[:]), display.Options{
		Digits: DIGITS,
		Dwell:  DWELL,
	})

	program, tick := setup(mux)
	go timer(tick)

	for {
		if err := program.Step(); err != nil {
			println(err.Error())
		}
	}
}

func average() (filter.Filter, error) {
	return filter.NewRunningAverage(AVERAGE_WEIGHT, 0), nil
}

// setup wires the selected program to the board and returns it along with
// its timer interrupt handler.
func setup(mux *display.Multiplexer) (board.Program, func()) {
	nop := func() {}

	switch PROGRAM {
	case PROGRAM_ACCEL:
		var s hal.Sampler = hal.NewBlockingSampler(newADCConverter(PIN_ACCEL_X, PIN_ACCEL_Y, PIN_ACCEL_Z), SAMPLER_RETRIES)
		conv := accel.GConverter{Zero: ACCEL_ZERO, CountsPerG: ACCEL_COUNTS_PER_G}
		if ACCEL_DIGITAL {
			machine.I2C0.Configure(machine.I2CConfig{})
			d := accel.NewADXL345Sampler(machine.I2C0, ACCEL_ADDRESS)
			s, conv = d, d.Calibration()
		}
		cycler := mode.NewAxisCycler(CYCLE_TICKS, DEBOUNCE)
		a, err := board.NewAccelDisplay(s, average, cycler, conv, mux)
		if err != nil {
			panic(err)
		}
		onPress(PIN_MODE, a.Press)
		return a, a.Tick

	case PROGRAM_TX:
		s := hal.NewBlockingSampler(newADCConverter(PIN_POT), SAMPLER_RETRIES)
		f, _ := average()
		shown, _ := average()
		return board.Programs{
			board.NewTransmitter(s, chanX, f, uartSender{uart}, relay.KeyADC),
			board.NewPotDisplay(s, chanX, shown, mux, display.NoPoint),
		}, nop

	case PROGRAM_RX:
		rx := relay.NewReceiver(IDLE_TICKS, nil)
		return board.Programs{
			uartPump{uart: uart, rx: rx},
			board.NewReceiver(rx, relay.KeyADC, mux),
		}, rx.Tick

	case PROGRAM_RANGE:
		return setupRange()

	case PROGRAM_SHOW:
		level := alarm.Level{Center: LEVEL_CENTER, Tolerance: LEVEL_TOLERANCE, Period: LEVEL_PERIOD}
		d := board.NewRangeDisplay(IDLE_TICKS, level, PRESETS, mux)
		d.Showcase(SHOWCASE_HOLD)
		return board.Programs{uartPump{uart: uart, rx: d.Receiver()}, d}, d.Receiver().Tick
	}

	s := hal.NewBlockingSampler(newADCConverter(PIN_POT), SAMPLER_RETRIES)
	f, _ := average()
	return board.NewPotDisplay(s, chanX, f, mux, display.NoPoint), nop
}

// setupRange wires the sensing board of the range finder. It has no display.
func setupRange() (board.Program, func()) {
	presets, err := alarm.NewPresets(PRESETS, PERIODS)
	if err != nil {
		panic(err)
	}

	PIN_TRIGGER.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PIN_ECHO.Configure(machine.PinConfig{Mode: machine.PinInput})
	echo := &alarm.EchoCapture{}
	if err := PIN_ECHO.SetInterrupt(machine.PinToggle, func(machine.Pin) { echo.Edge(micros()) }); err != nil {
		println("echo interrupt:", err.Error())
	}

	r := board.NewRangeFinder(board.RangeFinderOptions{
		Trigger: pinTrigger{PIN_TRIGGER},
		Echo:    echo,
		Sampler: hal.NewBlockingSampler(newADCConverter(PIN_ACCEL_X, PIN_ACCEL_Y), SAMPLER_RETRIES),
		X:       chanX,
		Y:       chanY,
		FilterX: filter.NewMeanOfN(LEVEL_SAMPLES, LEVEL_BAND),
		FilterY: filter.NewMeanOfN(LEVEL_SAMPLES, LEVEL_BAND),
		Buzzer:  newToneBuzzer(PIN_BUZZER),
		Out:     uartSender{uart},
		Presets: presets,
		Level:   alarm.Level{Center: LEVEL_CENTER, Tolerance: LEVEL_TOLERANCE, Period: LEVEL_PERIOD},
	})
	onPress(PIN_MODE, r.PressMode)
	onPress(PIN_PRESET, r.PressPreset)
	return r, func() {}
}

// timer stands in for the periodic timer interrupt.
func timer(tick func()) {
	ticker := time.NewTicker(TICK)
	for range ticker.C {
		tick()
	}
}
