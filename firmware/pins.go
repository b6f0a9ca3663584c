//go:build tinygo

package main

import (
	"machine"
	"time"
)

// Board programs.
const (
	PROGRAM_POT    = iota // potentiometer on one display
	PROGRAM_ACCEL         // 3-axis accelerometer, raw counts or g
	PROGRAM_TX            // potentiometer relayed to the other board
	PROGRAM_RX            // shows what the other board relays
	PROGRAM_RANGE         // ultrasonic range finder / level sensor
	PROGRAM_SHOW          // display board of the range finder
)

const (
	// Which program this image runs
	PROGRAM = PROGRAM_POT

	// ADC configuration
	ADC_REFERENCE_MV = 3300
	ADC_RESOLUTION   = 10 // 0-1023, the scale all thresholds use
	ADC_SHIFT        = 16 - ADC_RESOLUTION
	ADC_MAX          = 1<<ADC_RESOLUTION - 1
	SAMPLER_RETRIES  = 10000 // busy polls before the fault frame

	// Display
	DIGITS = 4
	DWELL  = 2 * time.Millisecond

	// Filters
	AVERAGE_WEIGHT = 10
	LEVEL_SAMPLES  = 5
	LEVEL_BAND     = 2

	// Mode timer
	TICK          = 10 * time.Millisecond
	CYCLE_TICKS   = 300 // ticks before the next axis
	DEBOUNCE      = 20  // ticks a button is ignored after a press
	IDLE_TICKS    = 10  // partial relay frame timeout
	SHOWCASE_HOLD = 500 * time.Millisecond

	// Accelerometer calibration (analog front end)
	ACCEL_ZERO         = 490
	ACCEL_COUNTS_PER_G = 100
	ACCEL_DIGITAL      = false // ADXL345 on I2C0 instead of the analog axes
	ACCEL_ADDRESS      = 0x53

	// Leveling alarm
	LEVEL_CENTER    = 490
	LEVEL_TOLERANCE = 10
	LEVEL_PERIOD    = 600

	// Serial configuration. Frames are 25 bytes; at 9600 baud one frame
	// takes ~26ms, well within the display refresh.
	UART_BAUD_RATE = 9600
	TRIGGER_PULSE  = 10 * time.Microsecond

	// Pot / accelerometer inputs
	PIN_POT     = machine.A0
	PIN_ACCEL_X = machine.A0
	PIN_ACCEL_Y = machine.A1
	PIN_ACCEL_Z = machine.A2

	// Digit select lines, leftmost first
	PIN_DIGIT1 = machine.D0
	PIN_DIGIT2 = machine.D1
	PIN_DIGIT3 = machine.D2
	PIN_DIGIT4 = machine.D3

	// Buttons (active low)
	PIN_MODE   = machine.D4
	PIN_PRESET = machine.D5

	// Range finder
	PIN_TRIGGER = machine.D6
	PIN_ECHO    = machine.D7
	PIN_BUZZER  = machine.D8
)

// Segment lines A-G, DP. Shared by all digits.
var PIN_SEGMENTS = [8]machine.Pin{
	machine.D9, machine.D10, machine.D11, machine.D12,
	machine.D13, machine.A3, machine.A4, machine.A5,
}

var PIN_DIGITS = [DIGITS]machine.Pin{PIN_DIGIT1, PIN_DIGIT2, PIN_DIGIT3, PIN_DIGIT4}

var (
	PRESETS = []int{5, 25, 50, 100, 250}
	PERIODS = []uint16{300, 600, 1250, 2500, 20000}
)
