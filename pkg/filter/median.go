package filter

import (
	"fmt"
	"slices"
	"time"
)

// EvenPolicy picks the median of an even-sized window.
type EvenPolicy uint8

const (
	// EvenAverage averages the two middle elements.
	EvenAverage EvenPolicy = iota
	// EvenLower takes the lower middle element.
	EvenLower
	// EvenUpper takes the upper middle element.
	EvenUpper
)

// ParseEvenPolicy maps the configuration names "average", "lower" and
// "upper" to a policy.
func ParseEvenPolicy(s string) (EvenPolicy, error) {
	switch s {
	case "", "average":
		return EvenAverage, nil
	case "lower":
		return EvenLower, nil
	case "upper":
		return EvenUpper, nil
	}
	return EvenAverage, fmt.Errorf("unknown even median policy %q", s)
}

func (p EvenPolicy) String() string {
	switch p {
	case EvenLower:
		return "lower"
	case EvenUpper:
		return "upper"
	}
	return "average"
}

// Median sorts window in place and returns its middle element.
// An empty window has median 0.
func Median(window []uint16, even EvenPolicy) uint16 {
	n := len(window)
	if n == 0 {
		return 0
	}
	slices.Sort(window)
	if n%2 == 1 {
		return window[n/2]
	}
	lo, hi := window[n/2-1], window[n/2]
	switch even {
	case EvenLower:
		return lo
	case EvenUpper:
		return hi
	}
	return uint16((uint32(lo) + uint32(hi)) / 2)
}

// MedianOfN takes n fresh samples per update, settling between reads, and
// only lets the median through when it moved by at least band counts.
type MedianOfN struct {
	band   uint16
	even   EvenPolicy
	settle time.Duration
	sleep  Sleep
	window []uint16
	prev   uint16
}

var _ Filter = (*MedianOfN)(nil)

// NewMedianOfN creates a filter over n samples. n < 1 is treated as 1.
func NewMedianOfN(n int, band uint16, even EvenPolicy, settle time.Duration, sleep Sleep) *MedianOfN {
	if n < 1 {
		n = 1
	}
	return &MedianOfN{
		band:   band,
		even:   even,
		settle: settle,
		sleep:  sleepOrDefault(sleep),
		window: make([]uint16, n),
	}
}

// Size returns the window length.
func (f *MedianOfN) Size() int { return len(f.window) }

// Update gates the median of window against the previous value. window
// must hold exactly Size samples and is sorted in place.
func (f *MedianOfN) Update(window []uint16) uint16 {
	f.prev = Gate(f.prev, Median(window, f.even), f.band)
	return f.prev
}

func (f *MedianOfN) Next(src Source) (uint16, error) {
	for i := range f.window {
		raw, err := src()
		if err != nil {
			return f.prev, err
		}
		f.window[i] = raw
		if f.settle > 0 && i < len(f.window)-1 {
			f.sleep(f.settle)
		}
	}
	return f.Update(f.window), nil
}

func (f *MedianOfN) Value() uint16 { return f.prev }

func (f *MedianOfN) Reset(v uint16) { f.prev = v }
