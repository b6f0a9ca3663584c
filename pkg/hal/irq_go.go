//go:build !tinygo

package hal

import "sync"

// State is the saved interrupt-enable state.
type State uintptr

// On hosted builds interrupt sources are goroutines, so a global lock stands
// in for the interrupt-enable flag. Sections must not nest.
var irqMu sync.Mutex

// Disable enters a critical section.
func Disable() State {
	irqMu.Lock()
	return 0
}

// Restore leaves a critical section entered with Disable.
func Restore(State) {
	irqMu.Unlock()
}
