package http

import (
	"errors"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/restclient/internal/constants"
)

const codeTransportError = "error"

// Metrics holds the transport collectors.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the transport collectors with reg. Collectors already
// registered by another client on the same registerer are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: constants.MetricsSubsystem,
			Name:      "requests_total",
			Help:      "HTTP requests issued, by method and status code.",
		},
		[]string{"method", "code"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: constants.MetricsNamespace,
			Subsystem: constants.MetricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time from sending a request to receiving response headers.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	if reg != nil {
		requests = register(reg, requests)
		duration = register(reg, duration)
	}

	return &Metrics{requests: requests, duration: duration}
}

func register[C prometheus.Collector](reg prometheus.Registerer, collector C) C {
	err := reg.Register(collector)
	if err == nil {
		return collector
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing
		}
	}

	return collector
}

func (m *Metrics) observe(method string, resp *nethttp.Response, elapsed time.Duration) {
	if m == nil {
		return
	}

	code := codeTransportError
	if resp != nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
