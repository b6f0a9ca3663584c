package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiver_KeepsLastGoodValue(t *testing.T) {
	var notified []Message
	r := NewReceiver(2, func(m Message) { notified = append(notified, m) })

	_, ok := r.Latest(KeyADC)
	assert.False(t, ok)

	_, err := r.Write(pad("\r\n#adc_val:512"))
	require.NoError(t, err)
	msg, ok := r.Latest(KeyADC)
	require.True(t, ok)
	assert.Equal(t, 512, msg.Value())
	assert.Equal(t, uint32(1), r.Seq())

	// Truncated at 10 bytes and then silence.
	r.Write(pad("\r\n#adc_val:999")[:10])
	assert.Equal(t, 10, r.Pending())
	for range 3 {
		r.Tick()
	}
	assert.Equal(t, 0, r.Pending())
	assert.Equal(t, 1, r.Dropped())

	msg, _ = r.Latest(KeyADC)
	assert.Equal(t, 512, msg.Value())
	assert.Equal(t, uint32(1), r.Seq())
	assert.Equal(t, []Message{ADC(512)}, notified)
}

func TestReceiver_PerKey(t *testing.T) {
	r := NewReceiver(0, nil)

	r.Write(pad("\r\n#distance:25"))
	r.Write(pad("\r\n#level x:480, y:495"))
	r.Write(pad("\r\n#distance:50"))

	d, ok := r.Latest(KeyDistance)
	require.True(t, ok)
	assert.Equal(t, 50, d.Value())

	l, ok := r.Latest(KeyLevel)
	require.True(t, ok)
	assert.Equal(t, []int{480, 495}, l.Values)
	assert.Equal(t, uint32(3), r.Seq())
}

func TestReceiver_NotifyMayReadBack(t *testing.T) {
	var r *Receiver
	var seen int
	r = NewReceiver(0, func(m Message) {
		got, _ := r.Latest(m.Key)
		seen = got.Value()
	})

	r.Write(pad("\r\n#adc_val:77"))
	assert.Equal(t, 77, seen)
}
