package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records commerce-store mutations and backend fetch health.
type StoreMetrics struct {
	mutations     *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	fetchFailures *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "State store mutations by store and action.",
	}, []string{"store", "action"})
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_fetch_duration_seconds",
		Help:    "Duration of storefront backend fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	fetchFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_fetch_failures_total",
		Help: "Failed storefront backend fetches.",
	}, []string{"endpoint"})
	reg.MustRegister(mutations, fetchDuration, fetchFailures)
	return &StoreMetrics{
		mutations:     mutations,
		fetchDuration: fetchDuration,
		fetchFailures: fetchFailures,
	}
}

// IncMutation counts one mutation of the named store.
func (m *StoreMetrics) IncMutation(store, action string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(store), normalizeLabel(action)).Inc()
}

// ObserveFetch records the duration for the named backend endpoint.
func (m *StoreMetrics) ObserveFetch(endpoint string, duration time.Duration) {
	if m == nil || m.fetchDuration == nil {
		return
	}
	m.fetchDuration.WithLabelValues(normalizeLabel(endpoint)).Observe(duration.Seconds())
}

// IncFetchFailure counts a failed fetch against the named endpoint.
func (m *StoreMetrics) IncFetchFailure(endpoint string) {
	if m == nil || m.fetchFailures == nil {
		return
	}
	m.fetchFailures.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
