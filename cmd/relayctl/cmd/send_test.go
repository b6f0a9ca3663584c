package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/quadled/pkg/relay"
)

func TestParseMessage(t *testing.T) {
	msg, err := parseMessage([]string{relay.KeyLevel, "480", "502"})
	require.NoError(t, err)
	assert.Equal(t, relay.Level(480, 502), msg)

	msg, err = parseMessage([]string{relay.KeyADC, "512"})
	require.NoError(t, err)
	assert.Equal(t, relay.ADC(512), msg)
}

func TestParseMessage_Errors(t *testing.T) {
	for _, args := range [][]string{
		{relay.KeyADC},
		{relay.KeyADC, "x"},
		{"a_very_long_key_that_does_not_fit", "1"},
	} {
		_, err := parseMessage(args)
		assert.Error(t, err, "%q", args)
	}
}
