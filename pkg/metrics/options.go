package metrics

import (
	"maps"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager.
type Option func(*Manager)

// WithName sets the metric name prefix. Empty parts keep the default
// "mindscan" namespace and "service" subsystem.
func WithName(namespace, subsystem string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets sets the millisecond buckets shared by the scoring,
// insight, coach, store and HTTP latency histograms. Buckets that are not
// strictly increasing are ignored.
func WithLatencyBuckets(ms ...float64) Option {
	return func(m *Manager) {
		if len(ms) == 0 || !slices.IsSorted(ms) || len(slices.Compact(slices.Clone(ms))) != len(ms) {
			return
		}
		m.histogramBuckets = slices.Clone(ms)
	}
}

// WithEnabled turns recording on or off. A disabled manager still registers
// its collectors so /healthz keeps a stable shape.
func WithEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithRefreshInterval sets how often the history and system gauges are sampled.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithConstLabels adds constant labels, such as the store driver or
// deployment, to every metric.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.customLabels = maps.Clone(labels)
		}
	}
}

// WithRegistry registers the collectors on registry instead of the default one.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
