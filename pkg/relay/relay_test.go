package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pad(s string) []byte {
	buf := make([]byte, FrameSize)
	copy(buf, s)
	return buf
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{"adc", ADC(512), "\r\n#adc_val:512"},
		{"distance", Distance(25), "\r\n#distance:25"},
		{"level", Level(490, 501), "\r\n#level x:490, y:501"},
		{"level missing y", Message{Key: KeyLevel, Values: []int{3}}, "\r\n#level x:3, y:0"},
		{"empty", Message{Key: KeyADC}, "\r\n#adc_val:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.msg))
		})
	}
}

func TestFrame(t *testing.T) {
	frame, err := Frame(ADC(512))
	require.NoError(t, err)
	assert.Len(t, frame, FrameSize)
	assert.Equal(t, pad("\r\n#adc_val:512"), frame)

	_, err = Frame(Level(-1000000, -1000000))
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		frame   []byte
		want    Message
		wantErr bool
	}{
		{name: "adc", frame: pad("\r\n#adc_val:512"), want: ADC(512)},
		{name: "distance", frame: pad("\r\n#distance:250"), want: Distance(250)},
		{name: "level", frame: pad("\r\n#level x:12, y:987"), want: Level(12, 987)},
		{name: "negative", frame: pad("\r\n#adc_val:-3"), want: ADC(-3)},
		{name: "unpadded", frame: []byte("\r\n#distance:7"), want: Distance(7)},
		{name: "missing header", frame: pad("adc_val:512"), wantErr: true},
		{name: "missing separator", frame: pad("\r\n#adc_val 512"), wantErr: true},
		{name: "unknown key", frame: pad("\r\n#speed:5"), wantErr: true},
		{name: "no digits", frame: pad("\r\n#adc_val:"), wantErr: true},
		{name: "trailing garbage", frame: pad("\r\n#adc_val:51\r\n#adc"), wantErr: true},
		{name: "level missing y", frame: pad("\r\n#level x:12"), wantErr: true},
		{name: "level bad y", frame: pad("\r\n#level x:12, y:a"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.frame)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedFrame)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessage_String(t *testing.T) {
	assert.Equal(t, "#level x:1, y:2", Level(1, 2).String())
	assert.Equal(t, 7, Distance(7).Value())
	assert.Equal(t, 0, Message{}.Value())
}
