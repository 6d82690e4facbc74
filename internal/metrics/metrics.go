package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for MentorHub
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Lifecycle Metrics
	RegistrationsTotal    *prometheus.CounterVec
	ApplicationDecisions  *prometheus.CounterVec
	RequestTransitions    *prometheus.CounterVec
	DecisionOverwrites    *prometheus.CounterVec
	MilestoneUpdatesTotal prometheus.Counter
	VersionConflictsTotal prometheus.Counter
	PendingApplications   *prometheus.GaugeVec
	PendingRequests       prometheus.Gauge
	LifecycleStreamLength prometheus.Gauge
	MonitorRunDuration    prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry registered on reg.
// A nil reg registers on the default Prometheus registry.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mentorhub_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mentorhub_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Lifecycle Metrics
		RegistrationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_registrations_total",
				Help: "Completed ensure-registered runs by track",
			},
			[]string{"track"},
		),
		ApplicationDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_application_decisions_total",
				Help: "Onboarding application decisions by track and status",
			},
			[]string{"track", "status"},
		),
		RequestTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_request_transitions_total",
				Help: "Mentorship request status transitions by target status",
			},
			[]string{"status"},
		),
		DecisionOverwrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mentorhub_decision_overwrites_total",
				Help: "Decisions that replaced an earlier, different decision",
			},
			[]string{"entity"},
		),
		MilestoneUpdatesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mentorhub_milestone_updates_total",
				Help: "Total milestone progress updates",
			},
		),
		VersionConflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "mentorhub_roadmap_version_conflicts_total",
				Help: "Roadmap writes rejected because of a stale expected version",
			},
		),
		PendingApplications: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mentorhub_pending_applications",
				Help: "Onboarding applications awaiting an admin decision",
			},
			[]string{"track"},
		),
		PendingRequests: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mentorhub_pending_requests",
				Help: "Mentorship requests awaiting a mentor decision",
			},
		),
		LifecycleStreamLength: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "mentorhub_lifecycle_stream_length",
				Help: "Number of entries in the lifecycle event stream",
			},
		),
		MonitorRunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mentorhub_monitor_run_duration_seconds",
				Help:    "Lifecycle monitor execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
	}
}
