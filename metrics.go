package ohmage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ohmage_client",
			Name:      "requests_total",
			Help:      "API requests issued, by endpoint.",
		},
		[]string{"endpoint"},
	)

	requestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ohmage_client",
			Name:      "request_failures_total",
			Help:      "API requests that returned an error, by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// observe counts one request against the endpoint's counters.
func observe(endpoint string, err error) {
	requestsTotal.WithLabelValues(endpoint).Inc()
	if err != nil {
		requestFailuresTotal.WithLabelValues(endpoint).Inc()
	}
}
