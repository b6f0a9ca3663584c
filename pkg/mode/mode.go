// Package mode holds the small state machines driven by the timer tick and
// the push buttons. Every transition runs inside a critical section so
// that interrupt handlers and the main loop see consistent state.
package mode

import "github.com/itohio/quadled/pkg/hal"

// Axis is an accelerometer axis.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return "?"
}

// Channel is the converter input wired to the axis.
func (a Axis) Channel() hal.Channel { return hal.Channel(a) }

// Mode is what the accelerometer display shows.
type Mode uint8

const (
	RawX Mode = iota
	RawY
	RawZ
	GX
	GY
	GZ
)

// Axis returns the axis shown in m.
func (m Mode) Axis() Axis { return Axis(m % 3) }

// IsG reports whether m shows acceleration in g.
func (m Mode) IsG() bool { return m >= GX }

func (m Mode) String() string {
	if m > GZ {
		return "unknown"
	}
	if m.IsG() {
		return "g-" + m.Axis().String()
	}
	return "raw-" + m.Axis().String()
}

// AxisCycler rotates through the three axes on a timer and switches between
// raw and g display on a button press.
type AxisCycler struct {
	threshold int
	debounce  int

	mode       Mode
	ticks      int
	sincePress int
}

// NewAxisCycler creates a cycler in raw-X. The axis advances every
// threshold ticks. Presses closer than debounce ticks to the last accepted
// one are ignored; 0 accepts every press.
func NewAxisCycler(threshold, debounce int) *AxisCycler {
	if threshold < 1 {
		threshold = 1
	}
	return &AxisCycler{
		threshold:  threshold,
		debounce:   debounce,
		mode:       RawX,
		sincePress: debounce,
	}
}

// Tick advances the period counter and reports whether the axis changed.
func (c *AxisCycler) Tick() bool {
	advanced := false
	hal.Critical(func() {
		if c.sincePress < c.debounce {
			c.sincePress++
		}
		c.ticks++
		if c.ticks < c.threshold {
			return
		}
		c.ticks = 0
		group := c.mode / 3 * 3
		c.mode = group + (c.mode-group+1)%3
		advanced = true
	})
	return advanced
}

// Press flips between the raw and g groups, restarting at X. It reports
// whether the press was accepted.
func (c *AxisCycler) Press() bool {
	accepted := false
	hal.Critical(func() {
		if c.sincePress < c.debounce {
			return
		}
		c.sincePress = 0
		c.ticks = 0
		if c.mode.IsG() {
			c.mode = RawX
		} else {
			c.mode = GX
		}
		accepted = true
	})
	return accepted
}

// Mode returns the current mode.
func (c *AxisCycler) Mode() Mode {
	var m Mode
	hal.Critical(func() { m = c.mode })
	return m
}
