package mode

import "github.com/itohio/quadled/pkg/hal"

// Measure selects what the range finder reports.
type Measure uint8

const (
	Distance Measure = iota
	Leveling
)

func (m Measure) String() string {
	switch m {
	case Distance:
		return "distance"
	case Leveling:
		return "leveling"
	}
	return "unknown"
}

// Toggle is the two-state distance/leveling switch. The zero value starts
// in Distance.
type Toggle struct {
	mode Measure
}

// Press switches to the other state and returns it.
func (t *Toggle) Press() Measure {
	var m Measure
	hal.Critical(func() {
		if t.mode == Distance {
			t.mode = Leveling
		} else {
			t.mode = Distance
		}
		m = t.mode
	})
	return m
}

// Set forces a state, used by receivers that follow the sender.
func (t *Toggle) Set(m Measure) {
	hal.Critical(func() { t.mode = m })
}

// Mode returns the current state.
func (t *Toggle) Mode() Measure {
	var m Measure
	hal.Critical(func() { m = t.mode })
	return m
}
