package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ScansTotal    *prometheus.CounterVec
	ScanDuration  prometheus.Histogram
	ScansInFlight prometheus.Gauge

	SearchRequestsTotal   *prometheus.CounterVec
	SearchRequestDuration *prometheus.HistogramVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	RateLimitHitsTotal prometheus.Counter

	QuotaRemaining prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		ScansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corporate_scanner_scans_total",
				Help: "Total number of scan runs processed",
			},
			[]string{"status"},
		),
		ScanDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "corporate_scanner_scan_duration_seconds",
				Help:    "Scan run duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),
		ScansInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "corporate_scanner_scans_in_flight",
				Help: "Number of scan runs currently being processed",
			},
		),

		SearchRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corporate_scanner_search_requests_total",
				Help: "Total number of search provider calls by stage",
			},
			[]string{"stage", "status"},
		),
		SearchRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corporate_scanner_search_request_duration_seconds",
				Help:    "Search provider call duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"stage"},
		),

		LLMRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corporate_scanner_llm_requests_total",
				Help: "Total number of LLM API requests",
			},
			[]string{"provider", "status"},
		),
		LLMRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corporate_scanner_llm_request_duration_seconds",
				Help:    "LLM request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "corporate_scanner_cache_hits_total",
				Help: "Total number of search cache hits",
			},
		),
		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "corporate_scanner_cache_misses_total",
				Help: "Total number of search cache misses",
			},
		),

		RateLimitHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "corporate_scanner_rate_limit_hits_total",
				Help: "Total number of rejected requests due to per-client rate limiting",
			},
		),

		QuotaRemaining: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "corporate_scanner_quota_remaining",
				Help: "Remaining shared daily quota as of the last check",
			},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordScan(status string, duration time.Duration) {
	m.ScansTotal.WithLabelValues(status).Inc()
	m.ScanDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordSearchRequest(stage, status string, duration time.Duration) {
	m.SearchRequestsTotal.WithLabelValues(stage, status).Inc()
	m.SearchRequestDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (m *Metrics) RecordLLMRequest(provider, status string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) RecordRateLimitHit() {
	m.RateLimitHitsTotal.Inc()
}

func (m *Metrics) SetQuotaRemaining(remaining float64) {
	m.QuotaRemaining.Set(remaining)
}

func (m *Metrics) IncScansInFlight() {
	m.ScansInFlight.Inc()
}

func (m *Metrics) DecScansInFlight() {
	m.ScansInFlight.Dec()
}
