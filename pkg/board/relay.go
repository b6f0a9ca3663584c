package board

import (
	"fmt"

	"github.com/itohio/quadled/pkg/display"
	"github.com/itohio/quadled/pkg/filter"
	"github.com/itohio/quadled/pkg/hal"
	"github.com/itohio/quadled/pkg/relay"
)

// Transmitter sends a filtered channel to the other board whenever it
// moves by more than MinDelta counts.
type Transmitter struct {
	src  filter.Source
	ch   hal.Channel
	f    filter.Filter
	out  Sender
	key  string
	sent bool
	last int

	MinDelta int
	Quantize int // sent values are rounded down to a multiple, 0 or 1 disables
}

// NewTransmitter relays channel ch of s under key.
func NewTransmitter(s hal.Sampler, ch hal.Channel, f filter.Filter, out Sender, key string) *Transmitter {
	return &Transmitter{
		src:      filter.FromSampler(s, ch),
		ch:       ch,
		f:        f,
		out:      out,
		key:      key,
		MinDelta: 1,
		Quantize: 2,
	}
}

func (t *Transmitter) Step() error {
	raw, err := t.f.Next(t.src)
	if err != nil {
		return fmt.Errorf("channel %d: %w", t.ch, err)
	}

	v := int(raw)
	if t.sent && abs(v-t.last) <= t.MinDelta {
		return nil
	}

	out := v
	if t.Quantize > 1 {
		out = v / t.Quantize * t.Quantize
	}
	if err := t.out.Send(relay.Message{Key: t.key, Values: []int{out}}); err != nil {
		return fmt.Errorf("send %s: %w", t.key, err)
	}
	t.last = v
	t.sent = true
	return nil
}

// Receiver shows the latest value relayed under one key.
type Receiver struct {
	rx  *relay.Receiver
	key string
	mux *display.Multiplexer

	LowCut  int // values at or below show 0
	HighCut int // values at or above show Full; 0 or less disables
	Full    int
}

// NewReceiver shows key from rx.
func NewReceiver(rx *relay.Receiver, key string, mux *display.Multiplexer) *Receiver {
	return &Receiver{
		rx:      rx,
		key:     key,
		mux:     mux,
		LowCut:  16,
		HighCut: 1000,
		Full:    1023,
	}
}

// Value returns what the display shows for the latest message.
func (r *Receiver) Value() int {
	msg, _ := r.rx.Latest(r.key)
	v := msg.Value()
	switch {
	case v <= r.LowCut:
		return 0
	case r.HighCut > 0 && v >= r.HighCut:
		return r.Full
	}
	return v
}

func (r *Receiver) Step() error {
	r.mux.Render(r.Value(), display.NoPoint)
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
