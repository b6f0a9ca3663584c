// Package filter smooths raw converter samples into values stable enough
// to show on a 7-segment display.
package filter

import (
	"time"

	"github.com/itohio/quadled/pkg/hal"
)

// Source reads one raw sample.
type Source func() (uint16, error)

// FromSampler binds a sampler channel as a Source.
func FromSampler(s hal.Sampler, ch hal.Channel) Source {
	return func() (uint16, error) {
		return s.Sample(ch)
	}
}

// Filter produces the next display value, pulling as many raw samples from
// src as the strategy needs. Filters keep their own state and must not be
// shared between channels.
type Filter interface {
	Next(src Source) (uint16, error)
	// Value returns the last produced value.
	Value() uint16
	// Reset seeds the state with v.
	Reset(v uint16)
}

// Gate holds prev unless next moved away from it by at least band counts.
func Gate(prev, next, band uint16) uint16 {
	if absDiff(prev, next) >= band {
		return next
	}
	return prev
}

func absDiff(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}

// Sleep is the delay used between samples; tests replace it.
type Sleep func(time.Duration)

func sleepOrDefault(s Sleep) Sleep {
	if s == nil {
		return time.Sleep
	}
	return s
}
