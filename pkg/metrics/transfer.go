package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransferMetrics records outcomes of order file transfers.
type TransferMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewTransferMetrics registers the transfer metrics on the provided registerer.
func NewTransferMetrics(reg prometheus.Registerer) *TransferMetrics {
	if reg == nil {
		return &TransferMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_transfer_duration_seconds",
		Help:    "Duration of order file transfers in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"protocol"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transfer_success",
		Help: "Successful order file transfers.",
	}, []string{"protocol"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transfer_failure",
		Help: "Failed order file transfers.",
	}, []string{"protocol"})
	reg.MustRegister(duration, success, failure)
	return &TransferMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for a transfer over the given protocol.
func (t *TransferMetrics) ObserveDuration(protocol string, duration time.Duration) {
	if t == nil || t.duration == nil {
		return
	}
	t.duration.WithLabelValues(normalizeLabel(protocol)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the given protocol.
func (t *TransferMetrics) IncSuccess(protocol string) {
	if t == nil || t.success == nil {
		return
	}
	t.success.WithLabelValues(normalizeLabel(protocol)).Inc()
}

// IncFailure increments the failure counter for the given protocol.
func (t *TransferMetrics) IncFailure(protocol string) {
	if t == nil || t.failure == nil {
		return
	}
	t.failure.WithLabelValues(normalizeLabel(protocol)).Inc()
}

func normalizeLabel(protocol string) string {
	if protocol == "" {
		return "unknown"
	}
	return protocol
}
