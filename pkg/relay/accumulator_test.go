package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(a *Accumulator, data []byte) []Message {
	var out []Message
	for _, b := range data {
		if msg, ok := a.Feed(b); ok {
			out = append(out, msg)
		}
	}
	return out
}

func TestAccumulator_ByteByByte(t *testing.T) {
	a := NewAccumulator(DefaultIdleTicks)
	frame := pad("\r\n#adc_val:512")

	for i, b := range frame[:FrameSize-1] {
		_, ok := a.Feed(b)
		require.False(t, ok, "byte %d", i)
		assert.Equal(t, i+1, a.Pending())
	}
	msg, ok := a.Feed(frame[FrameSize-1])
	require.True(t, ok)
	assert.Equal(t, ADC(512), msg)
	assert.Equal(t, 0, a.Pending())
}

func TestAccumulator_IgnoresNoiseBeforeStart(t *testing.T) {
	a := NewAccumulator(0)
	data := append([]byte("xx\n#"), pad("\r\n#distance:25")...)

	assert.Equal(t, []Message{Distance(25)}, feedAll(a, data))
	assert.Equal(t, 0, a.Dropped())
}

func TestAccumulator_TruncatedFrameTimesOut(t *testing.T) {
	a := NewAccumulator(3)
	frame := pad("\r\n#adc_val:512")

	feedAll(a, frame[:10])
	require.Equal(t, 10, a.Pending())

	for range 3 {
		a.Tick()
	}
	assert.Equal(t, 10, a.Pending(), "still within idle window")
	a.Tick()
	assert.Equal(t, 0, a.Pending())
	assert.Equal(t, 1, a.Dropped())

	assert.Equal(t, []Message{ADC(300)}, feedAll(a, pad("\r\n#adc_val:300")))
}

func TestAccumulator_TruncatedFrameResyncs(t *testing.T) {
	a := NewAccumulator(0)
	data := append(pad("\r\n#adc_val:512")[:10], pad("\r\n#adc_val:300")...)

	assert.Equal(t, []Message{ADC(300)}, feedAll(a, data))
	assert.Equal(t, 1, a.Dropped())
	assert.Equal(t, 0, a.Pending())
}

func TestAccumulator_MalformedFrameDropped(t *testing.T) {
	a := NewAccumulator(0)

	assert.Empty(t, feedAll(a, pad("\r\n#adc_val:5x2")))
	assert.Equal(t, 1, a.Dropped())
	assert.Equal(t, 0, a.Pending())
}

func TestAccumulator_TickWithoutTimeout(t *testing.T) {
	a := NewAccumulator(0)
	feedAll(a, []byte("\r\n#"))
	for range 100 {
		a.Tick()
	}
	assert.Equal(t, 3, a.Pending())

	a.Reset()
	assert.Equal(t, 0, a.Pending())
}

func TestAccumulator_FeedResetsIdle(t *testing.T) {
	a := NewAccumulator(2)
	frame := pad("\r\n#adc_val:42")

	var got []Message
	for _, b := range frame {
		a.Tick()
		a.Tick()
		if msg, ok := a.Feed(b); ok {
			got = append(got, msg)
		}
	}
	assert.Equal(t, []Message{ADC(42)}, got)
}
