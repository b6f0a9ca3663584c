package alarm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	distances = []int{5, 25, 50, 100, 250}
	periods   = []uint16{300, 600, 1250, 2500, 20000}
)

func TestNewPresets(t *testing.T) {
	_, err := NewPresets(nil, nil)
	assert.Error(t, err)

	_, err = NewPresets([]int{1, 2}, []uint16{3})
	assert.Error(t, err)

	p, err := NewPresets(distances, periods)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Current())
	assert.Equal(t, distances, p.Distances())
}

func TestPresets_NextWraps(t *testing.T) {
	p, err := NewPresets(distances, periods)
	require.NoError(t, err)

	var got []int
	for range 6 {
		got = append(got, p.Next())
	}
	assert.Equal(t, []int{25, 50, 100, 250, 5, 25}, got)
}

func TestPresets_Tone(t *testing.T) {
	p, err := NewPresets(distances, periods)
	require.NoError(t, err)

	tests := []struct {
		name    string
		presses int
		cm      int
		want    uint16
	}{
		{"first preset hit", 0, 5, 300},
		{"other preset distance", 0, 25, Silent},
		{"miss", 0, 6, Silent},
		{"second preset", 1, 25, 600},
		{"last preset", 3, 250, 20000},
		{"wrapped", 1, 5, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range tt.presses {
				p.Next()
			}
			assert.Equal(t, tt.want, p.Tone(tt.cm))
		})
	}
}

func TestLevel(t *testing.T) {
	l := Level{Center: 490, Tolerance: 10, Period: 600}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"center", 490, 490, true},
		{"edges", 480, 500, true},
		{"x off", 479, 490, false},
		{"y off", 490, 501, false},
		{"both off", 0, 1023, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.IsLevel(tt.x, tt.y))
			if tt.want {
				assert.Equal(t, uint16(600), l.Tone(tt.x, tt.y))
			} else {
				assert.Equal(t, Silent, l.Tone(tt.x, tt.y))
			}
		})
	}

	dx, dy := l.Deviation(470, 512)
	assert.Equal(t, 20, dx)
	assert.Equal(t, 22, dy)
}

func TestEchoCapture(t *testing.T) {
	var e EchoCapture

	_, seq := e.Width()
	assert.Equal(t, uint32(0), seq)

	e.Edge(1000)
	_, seq = e.Width()
	assert.Equal(t, uint32(0), seq, "rising edge alone completes nothing")

	e.Edge(1000 + 25*MicrosPerCm)
	w, seq := e.Width()
	assert.Equal(t, uint16(25*MicrosPerCm), w)
	assert.Equal(t, uint32(1), seq)
	assert.Equal(t, 25, e.Centimeters())
}

func TestEchoCapture_Overflow(t *testing.T) {
	var e EchoCapture

	e.Edge(65000)
	e.Edge(1000)

	w, _ := e.Width()
	assert.Equal(t, uint16(1536), w)
	assert.Equal(t, 26, Centimeters(w))
}
