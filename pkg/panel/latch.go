package panel

import (
	"sync"

	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/segment"
)

// Latch emulates persistence of vision. Every pattern shown on a digit
// while it is selected is accumulated until the next Flush, the way the
// eye blends a scanned display.
type Latch struct {
	mu       sync.Mutex
	selected []bool
	segments segment.Pattern
	acc      []segment.Pattern
	overlaps int
}

var _ hal.DigitalOutputBank = (*Latch)(nil)

// NewLatch creates a latch for digits positions.
func NewLatch(digits int) *Latch {
	return &Latch{
		selected: make([]bool, digits),
		acc:      make([]segment.Pattern, digits),
	}
}

// Digits returns the number of positions.
func (l *Latch) Digits() int { return len(l.acc) }

func (l *Latch) SetDigit(pos int, on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pos < 1 || pos > len(l.selected) {
		return
	}
	l.selected[pos-1] = on
	if !on {
		return
	}
	n := 0
	for _, s := range l.selected {
		if s {
			n++
		}
	}
	if n > 1 {
		l.overlaps++
	}
	l.acc[pos-1] |= l.segments
}

func (l *Latch) Write(p segment.Pattern) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.segments = p
	for i, s := range l.selected {
		if s {
			l.acc[i] |= p
		}
	}
}

// Flush returns what each position showed since the previous Flush and
// starts a new window.
func (l *Latch) Flush() []segment.Pattern {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := append([]segment.Pattern(nil), l.acc...)
	for i := range l.acc {
		l.acc[i] = segment.Blank
		// A digit left selected keeps glowing.
		if l.selected[i] {
			l.acc[i] = l.segments
		}
	}
	return out
}

// Overlaps counts the times more than one position was selected at once.
func (l *Latch) Overlaps() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.overlaps
}
