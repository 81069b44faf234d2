package github

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records API traffic. A nil *Metrics records nothing.
type Metrics struct {
	requests  *prometheus.CounterVec
	remaining prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg, if non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ghrefs_github_requests_total",
				Help: "Number of GitHub requests by endpoint and HTTP status code.",
			},
			[]string{"endpoint", "code"},
		),
		remaining: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ghrefs_github_ratelimit_remaining",
				Help: "Requests remaining in the current rate-limit window, as last reported by GitHub.",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.remaining)
	}
	return m
}

func (m *Metrics) observe(endpoint string, code int, rl RateLimit, haveRL bool) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	if haveRL {
		m.remaining.Set(float64(rl.Remaining))
	}
}

// networkFailure counts a request that got no response.
func (m *Metrics) networkFailure(endpoint string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint, "error").Inc()
}
