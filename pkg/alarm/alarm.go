// Package alarm implements the range finder's buzzer logic: distance
// presets with a tone per preset, the leveling alarm and ultrasonic echo
// timing.
package alarm

import (
	"fmt"

	"github.com/itohio/quadled/pkg/hal"
)

// Silent is the buzzer period that turns the tone off.
const Silent uint16 = 0

// Presets is the list of alarm distances cycled by the preset button.
type Presets struct {
	distances []int
	periods   []uint16
	idx       int
}

// NewPresets pairs each distance (cm) with the buzzer period played when
// the measured distance hits it.
func NewPresets(distances []int, periods []uint16) (*Presets, error) {
	if len(distances) == 0 {
		return nil, fmt.Errorf("no presets")
	}
	if len(distances) != len(periods) {
		return nil, fmt.Errorf("%d presets but %d periods", len(distances), len(periods))
	}
	return &Presets{
		distances: append([]int(nil), distances...),
		periods:   append([]uint16(nil), periods...),
	}, nil
}

// Next selects the following preset, wrapping to the first.
func (p *Presets) Next() int {
	var d int
	hal.Critical(func() {
		p.idx = (p.idx + 1) % len(p.distances)
		d = p.distances[p.idx]
	})
	return d
}

// Current returns the selected distance.
func (p *Presets) Current() int {
	var d int
	hal.Critical(func() { d = p.distances[p.idx] })
	return d
}

// Distances returns every preset in button order.
func (p *Presets) Distances() []int {
	return append([]int(nil), p.distances...)
}

// Tone returns the buzzer period for a measured distance: the selected
// preset's period when cm equals it, Silent otherwise.
func (p *Presets) Tone(cm int) uint16 {
	var period uint16
	hal.Critical(func() {
		if cm == p.distances[p.idx] {
			period = p.periods[p.idx]
		}
	})
	return period
}

// Level detects a flat board from two accelerometer axes.
type Level struct {
	Center    int // reading of a level axis
	Tolerance int
	Period    uint16
}

// Deviation returns how far each axis is from level.
func (l Level) Deviation(x, y int) (int, int) {
	return abs(x - l.Center), abs(y - l.Center)
}

// IsLevel reports both axes within Tolerance of Center.
func (l Level) IsLevel(x, y int) bool {
	dx, dy := l.Deviation(x, y)
	return dx <= l.Tolerance && dy <= l.Tolerance
}

// Tone returns Period when level, Silent otherwise.
func (l Level) Tone(x, y int) uint16 {
	if l.IsLevel(x, y) {
		return l.Period
	}
	return Silent
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
