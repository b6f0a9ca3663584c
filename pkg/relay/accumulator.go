package relay

// DefaultIdleTicks drops a partial frame after this many idle ticks.
const DefaultIdleTicks = 10

// Accumulator assembles frames one byte at a time. It is fed from the
// receive interrupt and owns no locks; wrap it in a Receiver when the main
// loop also reads it.
type Accumulator struct {
	// IdleTicks is how many Tick calls a partial frame survives without a
	// new byte. 0 disables the timeout.
	IdleTicks int

	buf     [FrameSize]byte
	n       int
	idle    int
	dropped int
}

// NewAccumulator creates an accumulator with the given idle timeout.
func NewAccumulator(idleTicks int) *Accumulator {
	return &Accumulator{IdleTicks: idleTicks}
}

// Feed adds one byte. Bytes before a carriage return are ignored. A
// carriage return in the middle of a frame starts a new one. Once a frame
// is complete it is parsed and the counter starts over; frames that do not
// parse are dropped.
func (a *Accumulator) Feed(b byte) (Message, bool) {
	a.idle = 0
	if b == '\r' && a.n > 0 {
		a.drop()
	}
	if a.n == 0 && b != '\r' {
		return Message{}, false
	}

	a.buf[a.n] = b
	a.n++
	if a.n < FrameSize {
		return Message{}, false
	}

	a.n = 0
	msg, err := Parse(a.buf[:])
	if err != nil {
		a.dropped++
		return Message{}, false
	}
	return msg, true
}

// Tick advances the idle timer.
func (a *Accumulator) Tick() {
	if a.n == 0 || a.IdleTicks == 0 {
		return
	}
	a.idle++
	if a.idle > a.IdleTicks {
		a.drop()
	}
}

// Reset discards any partial frame.
func (a *Accumulator) Reset() {
	a.n = 0
	a.idle = 0
}

// Pending returns the number of bytes collected for the current frame.
func (a *Accumulator) Pending() int { return a.n }

// Dropped returns how many frames were discarded.
func (a *Accumulator) Dropped() int { return a.dropped }

func (a *Accumulator) drop() {
	a.dropped++
	a.Reset()
}
