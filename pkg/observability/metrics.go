package observability

import (
	"errors"

	"github.com/aretw0/pathhierarchy/pkg/domain"
	"github.com/aretw0/pathhierarchy/pkg/stream"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Payload format labels.
const (
	FormatBinary = "binary"
	FormatJSON   = "json"
)

// Metrics holds the collectors. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	payload    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pathagg_operations_total",
				Help: "Total number of request-layer operations by outcome",
			},
			[]string{"op", "outcome"},
		),
		payload: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pathagg_payload_bytes",
				Help:    "Size of encoded aggregation configs",
				Buckets: prometheus.ExponentialBuckets(8, 2, 10),
			},
			[]string{"format"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.payload)
	}
	return m
}

// Observe counts one op, classifying err into an outcome label.
func (m *Metrics) Observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, Outcome(err)).Inc()
}

// ObservePayload records the size of an encoded config.
func (m *Metrics) ObservePayload(format string, size int) {
	if m == nil {
		return
	}
	m.payload.WithLabelValues(format).Observe(float64(size))
}

// Operations exposes the counter for tests and custom exporters.
func (m *Metrics) Operations() *prometheus.CounterVec { return m.operations }

// Payload exposes the histogram.
func (m *Metrics) Payload() *prometheus.HistogramVec { return m.payload }

// Outcome maps an error to its label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidArgument):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrMalformedRequest),
		errors.Is(err, stream.ErrMalformed),
		errors.Is(err, stream.ErrTruncated):
		return OutcomeMalformed
	case errors.Is(err, domain.ErrConfigNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
