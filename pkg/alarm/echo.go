package alarm

import "github.com/itohio/quadled/pkg/hal"

// MicrosPerCm is the round trip time of sound over one centimeter.
const MicrosPerCm = 58

// EchoCapture measures the echo pulse from timer captures on both edges.
// Edge runs in the capture interrupt; it alternates between the rising and
// falling edge.
type EchoCapture struct {
	rising  uint16
	waiting bool
	width   uint16
	seq     uint32
}

// Edge records a capture of the free running timer.
func (e *EchoCapture) Edge(count uint16) {
	hal.Critical(func() {
		if !e.waiting {
			e.rising = count
			e.waiting = true
			return
		}
		// uint16 arithmetic handles one timer overflow.
		e.width = count - e.rising
		e.waiting = false
		e.seq++
	})
}

// Width returns the last pulse width in timer counts and a sequence number
// that increases with every completed pulse.
func (e *EchoCapture) Width() (uint16, uint32) {
	var (
		w uint16
		s uint32
	)
	hal.Critical(func() { w, s = e.width, e.seq })
	return w, s
}

// Centimeters returns the distance for the last pulse with a 1 MHz timer.
func (e *EchoCapture) Centimeters() int {
	w, _ := e.Width()
	return Centimeters(w)
}

// Centimeters converts a pulse width in microseconds to distance.
func Centimeters(micros uint16) int {
	return int(micros) / MicrosPerCm
}
