// Package hal is the thin boundary between the display pipeline and the
// peripherals it drives. Register-level drivers live in the firmware; the
// core only sees the interfaces declared here.
package hal

import (
	"errors"

	"github.com/itohio/quadled/pkg/segment"
)

// ErrConverterTimeout is returned when the converter stays busy for longer
// than the configured number of polls.
var ErrConverterTimeout = errors.New("converter busy timeout")

// Channel selects an analog input (potentiometer, accelerometer axis).
type Channel uint8

// Sampler reads one fresh raw sample from a channel. Calls block until the
// conversion completes.
type Sampler interface {
	Sample(ch Channel) (uint16, error)
}

// Converter is the register view of a single shared ADC.
type Converter interface {
	// Select routes ch to the converter input.
	Select(ch Channel)
	// Busy reports a conversion in progress.
	Busy() bool
	// Start triggers a conversion on the selected channel.
	Start()
	// Result returns the last completed conversion.
	Result() uint16
}

// DigitalOutputBank drives a multiplexed 7-segment display: one select line
// per digit position (1 is leftmost) and a shared set of segment lines.
type DigitalOutputBank interface {
	SetDigit(pos int, on bool)
	Write(p segment.Pattern)
}

// Buzzer is a PWM piezo output. Period 0 silences it.
type Buzzer interface {
	SetPeriod(period uint16)
}

// Trigger fires a short pulse, such as an ultrasonic ranging request.
type Trigger interface {
	Pulse()
}

// Critical runs fn with interrupts disabled.
func Critical(fn func()) {
	s := Disable()
	fn()
	Restore(s)
}
