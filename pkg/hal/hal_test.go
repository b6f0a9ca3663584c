package hal

import (
	"errors"
	"sync"
	"testing"

	"github.com/itohio/quadled/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockingSampler_SelectsThenConverts(t *testing.T) {
	conv := &FakeConverter{
		Values:    map[Channel]uint16{3: 490, 4: 512},
		BusyPolls: 5,
	}
	s := NewBlockingSampler(conv, 100)

	x, err := s.Sample(3)
	require.NoError(t, err)
	y, err := s.Sample(4)
	require.NoError(t, err)

	assert.Equal(t, uint16(490), x)
	assert.Equal(t, uint16(512), y)
	assert.Equal(t, 2, conv.Conversion)
}

func TestBlockingSampler_SelectsBeforeWaiting(t *testing.T) {
	conv := &FakeConverter{Values: map[Channel]uint16{2: 300}, BusyPolls: 3}
	s := NewBlockingSampler(conv, 100)

	v, err := s.Sample(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(300), v)
	assert.Equal(t, []string{"select", "wait", "start", "wait", "read"}, conv.Ops)
}

func TestBlockingSampler_Timeout(t *testing.T) {
	conv := &FakeConverter{Stuck: true}
	s := NewBlockingSampler(conv, 10)

	_, err := s.Sample(1)
	assert.ErrorIs(t, err, ErrConverterTimeout)
	assert.Equal(t, 0, conv.Conversion, "must not start while busy")
}

func TestBlockingSampler_TimeoutDuringConversion(t *testing.T) {
	conv := &FakeConverter{BusyPolls: 50}
	s := NewBlockingSampler(conv, 10)

	_, err := s.Sample(1)
	assert.ErrorIs(t, err, ErrConverterTimeout)
	assert.Equal(t, 1, conv.Conversion)
}

func TestNewBlockingSampler_Defaults(t *testing.T) {
	s := NewBlockingSampler(&FakeConverter{}, 0)
	assert.Equal(t, DefaultRetries, s.retries)
}

func TestScriptedSampler(t *testing.T) {
	s := NewScriptedSampler().Script(1, 10, 20)

	for _, want := range []uint16{10, 20, 20} {
		got, err := s.Sample(1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 3, s.Reads(1))

	got, err := s.Sample(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), got)

	boom := errors.New("boom")
	s.Fail(boom)
	_, err = s.Sample(1)
	assert.ErrorIs(t, err, boom)
}

func TestRecordingBank(t *testing.T) {
	b := NewRecordingBank(4)
	b.SetDigit(2, true)
	b.Write(segment.Digit(7))
	b.SetDigit(9, true) // ignored
	b.SetDigit(2, false)

	events := b.Events()
	require.Len(t, events, 3)
	assert.Equal(t, []int{2}, events[0].Selected)
	assert.Equal(t, segment.Digit(7), events[1].Segments)
	assert.Empty(t, events[2].Selected)
	assert.Empty(t, b.Selected())

	b.Reset()
	assert.Empty(t, b.Events())
	assert.Equal(t, segment.Digit(7), b.Segments())
}

func TestSimSampler_Bounds(t *testing.T) {
	s := NewSimSampler(1023, 50, 30, 20, 1)
	s.Set(0, 1020)
	s.Set(1, 2)

	for range 200 {
		hi, err := s.Sample(0)
		require.NoError(t, err)
		lo, err := s.Sample(1)
		require.NoError(t, err)
		assert.LessOrEqual(t, hi, uint16(1023))
		assert.LessOrEqual(t, lo, uint16(82))
	}
	assert.Equal(t, uint16(1020), s.SetPoint(0))
}

func TestSimSampler_Quiet(t *testing.T) {
	s := NewSimSampler(0, 0, 0, 0, 1)
	s.Set(2, 512)
	v, err := s.Sample(2)
	require.NoError(t, err)
	assert.Equal(t, uint16(512), v)
}

func TestCritical_Serializes(t *testing.T) {
	var (
		wg    sync.WaitGroup
		count int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				Critical(func() { count++ })
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5000, count)
}

func TestSimConverter_ThroughBlockingSampler(t *testing.T) {
	sensor := NewSimSampler(1023, 0, 0, 0, 1)
	sensor.Set(1, 640)
	conv := NewSimConverter(sensor, 3)
	s := NewBlockingSampler(conv, 10)

	v, err := s.Sample(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(640), v)

	conv.Stall(true)
	_, err = s.Sample(1)
	assert.ErrorIs(t, err, ErrConverterTimeout)

	conv.Stall(false)
	v, err = s.Sample(1)
	require.NoError(t, err)
	assert.Equal(t, uint16(640), v)
}
