// Package metrics provides Prometheus metrics for the MindScan service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the MindScan service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Scan metrics
	scansRecorded      *prometheus.CounterVec
	validationFailures prometheus.Counter
	scansDuplicate     prometheus.Counter
	scoringLatency     prometheus.Histogram
	insightLatency     prometheus.Histogram

	// State gauges
	historyLength prometheus.Gauge
	habitDays     prometheus.Gauge

	// Coaching
	coachRequests *prometheus.CounterVec
	coachLatency  prometheus.Histogram

	// Store
	storeOperations *prometheus.CounterVec
	storeErrors     *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec
	corruptValues   *prometheus.CounterVec

	// Timers
	remindersFired    prometheus.Counter
	breathingSessions *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mindscan",
		subsystem:        "service",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often gauges sampled by the caller should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	if buckets == nil {
		buckets = m.histogramBuckets
	}
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.scansRecorded = auto.NewCounterVec(
		m.counterOpts("scans_recorded_total", "Scans scored and appended to history by strategy and risk label"),
		[]string{"strategy", "risk"},
	)
	m.validationFailures = auto.NewCounter(m.counterOpts("scan_validation_failures_total", "Scans rejected because answers were missing or out of range"))
	m.scansDuplicate = auto.NewCounter(m.counterOpts("scans_duplicate_total", "Scan submissions acknowledged as duplicates"))
	m.scoringLatency = auto.NewHistogram(m.histogramOpts("scoring_latency_milliseconds", "Time to validate and score one questionnaire", nil))
	m.insightLatency = auto.NewHistogram(m.histogramOpts("insight_latency_milliseconds", "Time to derive insights for one scan", nil))

	m.historyLength = auto.NewGauge(m.gaugeOpts("history_entries", "Number of stored history entries"))
	m.habitDays = auto.NewGauge(m.gaugeOpts("habit_days", "Number of dates with a habit record"))

	m.coachRequests = auto.NewCounterVec(
		m.counterOpts("coach_requests_total", "Coaching requests by outcome (ok, empty, error, stale)"),
		[]string{"outcome"},
	)
	m.coachLatency = auto.NewHistogram(m.histogramOpts("coach_latency_milliseconds", "Latency of the coaching endpoint", nil))

	m.storeOperations = auto.NewCounterVec(
		m.counterOpts("store_operations_total", "Key-value store operations by driver and operation"),
		[]string{"driver", "op"},
	)
	m.storeErrors = auto.NewCounterVec(
		m.counterOpts("store_errors_total", "Failed key-value store operations by driver and operation"),
		[]string{"driver", "op"},
	)
	m.storeLatency = auto.NewHistogramVec(
		m.histogramOpts("store_latency_milliseconds", "Key-value store operation latency", nil),
		[]string{"driver", "op"},
	)
	m.corruptValues = auto.NewCounterVec(
		m.counterOpts("store_corrupt_values_total", "Stored values that failed to decode and were replaced by defaults"),
		[]string{"key"},
	)

	m.remindersFired = auto.NewCounter(m.counterOpts("reminders_fired_total", "Check-in reminders fired"))
	m.breathingSessions = auto.NewCounterVec(
		m.counterOpts("breathing_sessions_total", "Guided breathing sessions by outcome"),
		[]string{"outcome"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", nil),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error", nil),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordScan counts one recorded scan.
func (m *Manager) RecordScan(strategy, risk string) {
	if m.enabled {
		m.scansRecorded.WithLabelValues(strategy, risk).Inc()
	}
}

// RecordValidationFailure counts one rejected questionnaire.
func (m *Manager) RecordValidationFailure() {
	if m.enabled {
		m.validationFailures.Inc()
	}
}

// RecordScanDuplicate counts one duplicate submission.
func (m *Manager) RecordScanDuplicate() {
	if m.enabled {
		m.scansDuplicate.Inc()
	}
}

// RecordScoringLatency records scoring latency in milliseconds.
func (m *Manager) RecordScoringLatency(latencyMs float64) {
	if m.enabled {
		m.scoringLatency.Observe(latencyMs)
	}
}

// RecordInsightLatency records insight derivation latency in milliseconds.
func (m *Manager) RecordInsightLatency(latencyMs float64) {
	if m.enabled {
		m.insightLatency.Observe(latencyMs)
	}
}

// UpdateHistoryLength sets the history size gauge.
func (m *Manager) UpdateHistoryLength(n int) {
	if m.enabled {
		m.historyLength.Set(float64(n))
	}
}

// UpdateHabitDays sets the habit days gauge.
func (m *Manager) UpdateHabitDays(n int) {
	if m.enabled {
		m.habitDays.Set(float64(n))
	}
}

// RecordCoachRequest counts one coaching request and its latency.
func (m *Manager) RecordCoachRequest(outcome string, latencyMs float64) {
	if m.enabled {
		m.coachRequests.WithLabelValues(outcome).Inc()
		m.coachLatency.Observe(latencyMs)
	}
}

// RecordStoreOperation counts one store call. failed marks an error result.
func (m *Manager) RecordStoreOperation(driver, op string, latencyMs float64, failed bool) {
	if !m.enabled {
		return
	}
	m.storeOperations.WithLabelValues(driver, op).Inc()
	m.storeLatency.WithLabelValues(driver, op).Observe(latencyMs)
	if failed {
		m.storeErrors.WithLabelValues(driver, op).Inc()
	}
}

// RecordCorruptValue counts one stored value replaced by its default.
func (m *Manager) RecordCorruptValue(key string) {
	if m.enabled {
		m.corruptValues.WithLabelValues(key).Inc()
	}
}

// RecordReminderFired counts one fired reminder.
func (m *Manager) RecordReminderFired() {
	if m.enabled {
		m.remindersFired.Inc()
	}
}

// RecordBreathingSession counts one breathing session by outcome.
func (m *Manager) RecordBreathingSession(outcome string) {
	if m.enabled {
		m.breathingSessions.WithLabelValues(outcome).Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordHTTPError records an HTTP error with its endpoint, type and severity.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string, latencyMs float64) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
		m.errorRateByType.WithLabelValues(errorType, severity).Inc()
		m.errorLatency.WithLabelValues("http", errorType).Observe(latencyMs)
	}
}

// UpdateSystem sets the memory and goroutine gauges and observes the
// average GC pause.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// Package-level helpers record on the global manager.

// RecordScan counts one recorded scan.
func RecordScan(strategy, risk string) { globalManager.RecordScan(strategy, risk) }

// RecordValidationFailure counts one rejected questionnaire.
func RecordValidationFailure() { globalManager.RecordValidationFailure() }

// RecordScanDuplicate counts one duplicate submission.
func RecordScanDuplicate() { globalManager.RecordScanDuplicate() }

// RecordScoringLatency records scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) { globalManager.RecordScoringLatency(latencyMs) }

// RecordInsightLatency records insight latency in milliseconds.
func RecordInsightLatency(latencyMs float64) { globalManager.RecordInsightLatency(latencyMs) }

// UpdateHistoryLength sets the history size gauge.
func UpdateHistoryLength(n int) { globalManager.UpdateHistoryLength(n) }

// UpdateHabitDays sets the habit days gauge.
func UpdateHabitDays(n int) { globalManager.UpdateHabitDays(n) }

// RecordCoachRequest counts one coaching request.
func RecordCoachRequest(outcome string, latencyMs float64) {
	globalManager.RecordCoachRequest(outcome, latencyMs)
}

// RecordStoreOperation counts one store call.
func RecordStoreOperation(driver, op string, latencyMs float64, failed bool) {
	globalManager.RecordStoreOperation(driver, op, latencyMs, failed)
}

// RecordCorruptValue counts one corrupt stored value.
func RecordCorruptValue(key string) { globalManager.RecordCorruptValue(key) }

// RecordReminderFired counts one fired reminder.
func RecordReminderFired() { globalManager.RecordReminderFired() }

// RecordBreathingSession counts one breathing session.
func RecordBreathingSession(outcome string) { globalManager.RecordBreathingSession(outcome) }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records an HTTP error.
func RecordHTTPError(endpoint, method, errorType, severity string, latencyMs float64) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity, latencyMs)
}

// UpdateSystem records system gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns the sampling period of the global manager.
func RefreshInterval() time.Duration { return globalManager.RefreshInterval() }
