package cmd

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/itohio/quadled/pkg/relay"
)

// linkMetrics exports what arrives on a relay link.
type linkMetrics struct {
	registry *prometheus.Registry
	received *prometheus.CounterVec
	dropped  prometheus.Gauge
	value    *prometheus.GaugeVec
}

func newLinkMetrics() *linkMetrics {
	m := &linkMetrics{
		registry: prometheus.NewRegistry(),
		received: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_messages_received_total",
			Help: "Frames decoded from the link, by key.",
		}, []string{"key"}),
		dropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_frames_dropped",
			Help: "Malformed frames dropped by the receive accumulator.",
		}),
		value: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "relay_value",
			Help: "Last value received, by key and field index.",
		}, []string{"key", "field"}),
	}
	m.registry.MustRegister(m.received, m.dropped, m.value)
	return m
}

func (m *linkMetrics) observe(msg relay.Message) {
	m.received.WithLabelValues(msg.Key).Inc()
	for i, v := range msg.Values {
		m.value.WithLabelValues(msg.Key, strconv.Itoa(i)).Set(float64(v))
	}
}

func (m *linkMetrics) setDropped(n uint64) {
	m.dropped.Set(float64(n))
}

func (m *linkMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
