package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Lifecycle metrics
	LaunchesTotal *prometheus.CounterVec
	StopsTotal    *prometheus.CounterVec

	// Registry metrics
	Definitions      prometheus.Gauge
	TrackedProcesses prometheus.Gauge

	// Startup orchestration metrics
	StartupRuns     prometheus.Counter
	StartupFailures prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launchdock_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launchdock_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		// Lifecycle metrics
		LaunchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launchdock_launches_total",
				Help: "Total number of launch attempts",
			},
			[]string{"result"},
		),
		StopsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launchdock_stops_total",
				Help: "Total number of stop attempts",
			},
			[]string{"result"},
		),

		// Registry metrics
		Definitions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "launchdock_definitions",
				Help: "Number of registered application definitions",
			},
		),
		TrackedProcesses: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "launchdock_tracked_processes",
				Help: "Number of tracked running processes",
			},
		),

		// Startup orchestration metrics
		StartupRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "launchdock_startup_runs_total",
				Help: "Total number of startup orchestration runs",
			},
		),
		StartupFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "launchdock_startup_app_failures_total",
				Help: "Total number of per-app launch failures during startup",
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "launchdock_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "launchdock_uptime_seconds",
				Help: "Backend uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordLaunch records a launch attempt
func (m *Metrics) RecordLaunch(result string) {
	m.LaunchesTotal.WithLabelValues(result).Inc()
}

// RecordStop records a stop attempt
func (m *Metrics) RecordStop(result string) {
	m.StopsTotal.WithLabelValues(result).Inc()
}

// SetDefinitions sets the number of registered definitions
func (m *Metrics) SetDefinitions(count int) {
	m.Definitions.Set(float64(count))
}

// SetTrackedProcesses sets the number of tracked running processes
func (m *Metrics) SetTrackedProcesses(count int) {
	m.TrackedProcesses.Set(float64(count))
}

// IncStartupRuns increments the startup orchestration run counter
func (m *Metrics) IncStartupRuns() {
	m.StartupRuns.Inc()
}

// IncStartupFailures increments the per-app startup failure counter
func (m *Metrics) IncStartupFailures() {
	m.StartupFailures.Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
