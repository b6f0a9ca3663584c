//go:build !tinygo

package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/quadled/pkg/config"
)

func quietMock(rate time.Duration) *config.MockConfig {
	return &config.MockConfig{
		SetPoint:   500,
		Period:     100,
		Seed:       1,
		SampleRate: rate,
	}
}

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case m, ok := <-ch:
		require.True(t, ok, "channel closed")
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("no message")
	}
	return Message{}
}

func TestMock_SendLoopsBack(t *testing.T) {
	m := NewMock(quietMock(0), KeyADC)

	assert.ErrorIs(t, m.Send(ADC(1)), ErrNotConnected)

	require.NoError(t, m.Connect())
	defer m.Close()
	assert.Error(t, m.Connect())
	assert.True(t, m.IsConnected())

	require.NoError(t, m.Send(Level(480, 505)))
	assert.Equal(t, Level(480, 505), receive(t, m.Messages()))
}

func TestMock_Generates(t *testing.T) {
	tests := []struct {
		key  string
		want Message
	}{
		{KeyADC, ADC(500)},
		{KeyDistance, Distance(500)},
		{KeyLevel, Level(500, 500)},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := NewMock(quietMock(5*time.Millisecond), tt.key)
			require.NoError(t, m.Connect())
			defer m.Close()

			assert.Equal(t, tt.want, receive(t, m.Messages()))
		})
	}
}

func TestMock_SetPoint(t *testing.T) {
	m := NewMock(quietMock(5*time.Millisecond), KeyADC)
	m.Sensor().Set(0, 123)
	require.NoError(t, m.Connect())
	defer m.Close()

	assert.Equal(t, ADC(123), receive(t, m.Messages()))
}
