package authorize

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	phaseBegin    = "begin"
	phaseComplete = "complete"

	resultRedirect          = "redirect"
	resultCompleted         = "completed"
	resultLookupFailed      = "lookup_failed"
	resultExchangeFailed    = "exchange_failed"
	resultPersistenceFailed = "persistence_failed"
)

type Metrics struct {
	authorizations   *prometheus.CounterVec
	exchangeDuration prometheus.Histogram
}

// NewMetrics builds the collectors and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		authorizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shopgate",
			Name:      "authorizations_total",
			Help:      "Shop authorization passes by phase, resolved grant mode and outcome.",
		}, []string{"phase", "grant_mode", "result"}),
		exchangeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shopgate",
			Name:      "token_exchange_duration_seconds",
			Help:      "Latency of code-for-token exchanges with the provider.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.authorizations, m.exchangeDuration)
	}
	return m
}

func (m *Metrics) observe(phase, mode, result string) {
	m.authorizations.WithLabelValues(phase, mode, result).Inc()
}
