package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"stash/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	SetStoreEntries(namespace string, count int)
	IncMonthlyResets(kind string)
	IncResetClearFailures(leg string)
	IncSessionTransitions(event string)
	AddBudgetCapsExpired(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	storeEntries        *prometheus.GaugeVec
	monthlyResets       *prometheus.CounterVec
	resetClearFailures  *prometheus.CounterVec
	sessionTransitions  *prometheus.CounterVec
	budgetCapsExpired   prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetStoreEntries(namespace string, count int) {
	m.storeEntries.WithLabelValues(namespace).Set(float64(count))
}

func (m *MetricsProvider) IncMonthlyResets(kind string) {
	m.monthlyResets.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncResetClearFailures(leg string) {
	m.resetClearFailures.WithLabelValues(leg).Inc()
}

func (m *MetricsProvider) IncSessionTransitions(event string) {
	m.sessionTransitions.WithLabelValues(event).Inc()
}

func (m *MetricsProvider) AddBudgetCapsExpired(count int) {
	if count > 0 {
		m.budgetCapsExpired.Add(float64(count))
	}
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stash_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stash_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_profile_cache_hits_total",
			Help: "Total number of profile cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_profile_cache_misses_total",
			Help: "Total number of profile cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "stash_persistence_duration_seconds",
			Help:    "Duration of state snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		storeEntries: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stash_store_entries",
			Help: "Number of stored client-state entries per namespace",
		}, []string{"namespace"}),

		monthlyResets: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stash_monthly_resets_total",
			Help: "Monthly resets performed",
		}, []string{"kind"}),

		resetClearFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stash_monthly_reset_clear_failures_total",
			Help: "Failed clear calls during monthly resets",
		}, []string{"leg"}),

		sessionTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stash_personality_session_transitions_total",
			Help: "Temporary personality session transitions",
		}, []string{"event"}),

		budgetCapsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stash_budget_caps_expired_total",
			Help: "Budget cap overrides removed after expiry",
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) SetStoreEntries(_ string, _ int)                  {}
func (n *noopMetrics) IncMonthlyResets(_ string)                        {}
func (n *noopMetrics) IncResetClearFailures(_ string)                   {}
func (n *noopMetrics) IncSessionTransitions(_ string)                   {}
func (n *noopMetrics) AddBudgetCapsExpired(_ int)                       {}
