// Package display time-multiplexes a row of 7-segment digits that share
// their segment lines.
package display

import (
	"time"

	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/segment"
)

const (
	// DefaultDigits is the width of a quad-digit module.
	DefaultDigits = 4
	// DefaultDwell keeps each digit lit long enough to blend at a few
	// hundred passes per second.
	DefaultDwell = 2 * time.Millisecond
)

// Point lights the decimal point of one position; positions count from 1 on
// the left.
type Point int

// NoPoint leaves every decimal point off.
const NoPoint Point = 0

// Overflow decides what an out of range value shows.
type Overflow uint8

const (
	// Clamp shows the nearest representable value.
	Clamp Overflow = iota
	// Dashes shows the fault frame.
	Dashes
)

// Cell is one lit position.
type Cell struct {
	Position int
	Pattern  segment.Pattern
}

// Frame is the set of cells shown during one pass, in scan order.
type Frame []Cell

// Options configures a Multiplexer.
type Options struct {
	Digits   int
	Dwell    time.Duration
	Overflow Overflow
	Sleep    func(time.Duration)
}

// Multiplexer drives one display. A pass lights each cell of a frame in
// turn; callers repeat passes continuously to keep the image.
type Multiplexer struct {
	bank     hal.DigitalOutputBank
	digits   int
	dwell    time.Duration
	overflow Overflow
	sleep    func(time.Duration)
	max      int
	active   int
}

// New creates a multiplexer over bank.
func New(bank hal.DigitalOutputBank, opts Options) *Multiplexer {
	if opts.Digits <= 0 {
		opts.Digits = DefaultDigits
	}
	if opts.Dwell == 0 {
		opts.Dwell = DefaultDwell
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	max := 1
	for range opts.Digits {
		max *= 10
	}

	return &Multiplexer{
		bank:     bank,
		digits:   opts.Digits,
		dwell:    opts.Dwell,
		overflow: opts.Overflow,
		sleep:    opts.Sleep,
		max:      max - 1,
	}
}

// Digits returns the number of positions.
func (m *Multiplexer) Digits() int { return m.digits }

// Max returns the largest value the display can show.
func (m *Multiplexer) Max() int { return m.max }

// Clamp saturates v into [0, Max].
func (m *Multiplexer) Clamp(v int) int {
	return max(0, min(v, m.max))
}

// Render shows value for one pass, least significant digit on the right.
// Only as many positions as the magnitude needs are lit.
func (m *Multiplexer) Render(value int, point Point) {
	if value < 0 || value > m.max {
		if m.overflow == Dashes {
			m.RenderFault()
			return
		}
		value = m.Clamp(value)
	}
	m.Show(Number(value, m.digits, point))
}

// RenderFault shows a dash on every position.
func (m *Multiplexer) RenderFault() {
	m.Show(Fault(m.digits))
}

// RenderPair shows two values side by side, each in half of the display.
func (m *Multiplexer) RenderPair(left, right int) {
	m.Show(Pair(left, right, m.digits))
}

// Show lights every cell of f in order, blanking between cells so that at
// most one select line is ever asserted.
func (m *Multiplexer) Show(f Frame) {
	for _, c := range f {
		if c.Position < 1 || c.Position > m.digits {
			continue
		}
		if m.active != 0 {
			m.bank.SetDigit(m.active, false)
			m.active = 0
		}
		m.bank.Write(c.Pattern)
		m.bank.SetDigit(c.Position, true)
		m.active = c.Position
		m.sleep(m.dwell)
	}
}

// Blank releases the active position.
func (m *Multiplexer) Blank() {
	if m.active != 0 {
		m.bank.SetDigit(m.active, false)
		m.active = 0
	}
	m.bank.Write(segment.Blank)
}
