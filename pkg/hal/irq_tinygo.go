//go:build tinygo

package hal

import "runtime/interrupt"

// State is the saved interrupt-enable state.
type State = interrupt.State

// Disable masks interrupts and returns the previous state.
func Disable() State {
	return interrupt.Disable()
}

// Restore puts back the interrupt state returned by Disable.
func Restore(state State) {
	interrupt.Restore(state)
}
