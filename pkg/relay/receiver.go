package relay

import "github.com/itohio/quadled/pkg/hal"

// Receiver keeps the latest message per key. Feed and Tick run in
// interrupt context, the getters in the main loop.
type Receiver struct {
	acc    *Accumulator
	latest map[string]Message
	seq    uint32
	notify func(Message)
}

// NewReceiver creates a receiver. notify, if set, is called from Feed with
// each new message.
func NewReceiver(idleTicks int, notify func(Message)) *Receiver {
	return &Receiver{
		acc:    NewAccumulator(idleTicks),
		latest: make(map[string]Message),
		notify: notify,
	}
}

// Feed passes one received byte to the accumulator.
func (r *Receiver) Feed(b byte) {
	var (
		msg Message
		ok  bool
	)
	hal.Critical(func() {
		msg, ok = r.acc.Feed(b)
		if ok {
			r.latest[msg.Key] = msg
			r.seq++
		}
	})
	if ok && r.notify != nil {
		r.notify(msg)
	}
}

// Write feeds every byte of p. It never fails.
func (r *Receiver) Write(p []byte) (int, error) {
	for _, b := range p {
		r.Feed(b)
	}
	return len(p), nil
}

// Tick advances the idle timeout of a partial frame.
func (r *Receiver) Tick() {
	hal.Critical(r.acc.Tick)
}

// Latest returns the last good message for key.
func (r *Receiver) Latest(key string) (Message, bool) {
	var (
		msg Message
		ok  bool
	)
	hal.Critical(func() { msg, ok = r.latest[key] })
	return msg, ok
}

// Seq increases with every accepted message.
func (r *Receiver) Seq() uint32 {
	var s uint32
	hal.Critical(func() { s = r.seq })
	return s
}

// Pending returns the bytes collected for the current frame.
func (r *Receiver) Pending() int {
	var n int
	hal.Critical(func() { n = r.acc.Pending() })
	return n
}

// Dropped returns how many frames were discarded.
func (r *Receiver) Dropped() int {
	var n int
	hal.Critical(func() { n = r.acc.Dropped() })
	return n
}
