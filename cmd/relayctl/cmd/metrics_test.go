package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/quadled/pkg/relay"
)

func TestLinkMetrics(t *testing.T) {
	m := newLinkMetrics()

	m.observe(relay.ADC(512))
	m.observe(relay.ADC(514))
	m.observe(relay.Level(480, 502))
	m.setDropped(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.received.WithLabelValues(relay.KeyADC)))
	assert.Equal(t, 514.0, testutil.ToFloat64(m.value.WithLabelValues(relay.KeyADC, "0")))
	assert.Equal(t, 502.0, testutil.ToFloat64(m.value.WithLabelValues(relay.KeyLevel, "1")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dropped))

	rec := httptest.NewRecorder()
	m.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `relay_value{field="0",key="adc_val"} 514`)
}
