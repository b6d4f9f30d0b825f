// Package metrics provides Prometheus metrics for a nowbar game session.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Judgment outcome label values.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomePass  = "pass"
	OutcomeWhiff = "whiff"
)

// tickBuckets covers sub-millisecond ticks up to a blown 60Hz frame budget.
var tickBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 33}

// Manager owns every Prometheus collector for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Judgment
	judgments *prometheus.CounterVec
	score     prometheus.Gauge
	combo     prometheus.Gauge
	maxCombo  prometheus.Gauge

	// Visible set
	activeObjects *prometheus.GaugeVec
	spawns        prometheus.Counter
	retirements   prometheus.Counter

	// Frame loop
	ticks        prometheus.Counter
	tickDuration prometheus.Histogram

	// Input queue
	inputQueueSize    prometheus.Gauge
	inputQueueDropped prometheus.Counter
	inputsApplied     *prometheus.CounterVec

	// Catalog
	catalogEvents   *prometheus.GaugeVec
	catalogRejected *prometheus.CounterVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nowbar",
		subsystem:        "engine",
		histogramBuckets: tickBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.judgments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "judgments_total",
		Help:      "Judgment outcomes by kind (hit, miss, pass, whiff)",
	}, []string{"outcome"})

	m.score = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score",
		Help:      "Current session score",
	})

	m.combo = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "combo",
		Help:      "Current consecutive hit streak",
	})

	m.maxCombo = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "max_combo",
		Help:      "Longest hit streak this session",
	})

	m.activeObjects = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_objects",
		Help:      "Objects currently in the active set by kind",
	}, []string{"kind"})

	m.spawns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "spawns_total",
		Help:      "Objects that entered the active set",
	})

	m.retirements = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "retirements_total",
		Help:      "Objects that left the active set",
	})

	m.ticks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ticks_total",
		Help:      "Frames processed by the session",
	})

	m.tickDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tick_duration_milliseconds",
		Help:      "Time spent in a single session tick",
		Buckets:   m.histogramBuckets,
	})

	m.inputQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "input_queue_size",
		Help:      "Inputs waiting for the next tick",
	})

	m.inputQueueDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "input_queue_dropped_total",
		Help:      "Inputs dropped because the queue was full or closed",
	})

	m.inputsApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inputs_applied_total",
		Help:      "Inputs applied to the session by kind",
	}, []string{"kind"})

	m.catalogEvents = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_events",
		Help:      "Events loaded into the catalog by kind",
	}, []string{"kind"})

	m.catalogRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_rejected_total",
		Help:      "Catalog records rejected as malformed by kind",
	}, []string{"kind"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// Judgment Functions.

// RecordJudgment counts one judgment outcome.
func RecordJudgment(outcome string) {
	globalManager.judgments.WithLabelValues(outcome).Inc()
}

// UpdateScore sets the score and combo gauges.
func UpdateScore(score, combo, maxCombo int) {
	globalManager.score.Set(float64(score))
	globalManager.combo.Set(float64(combo))
	globalManager.maxCombo.Set(float64(maxCombo))
}

// Visible Set Functions.

// UpdateActiveObjects sets the active-set size for one kind.
func UpdateActiveObjects(kind string, count int) {
	globalManager.activeObjects.WithLabelValues(kind).Set(float64(count))
}

// RecordSpawns adds n active-set entries.
func RecordSpawns(n int) {
	globalManager.spawns.Add(float64(n))
}

// RecordRetirements adds n active-set removals.
func RecordRetirements(n int) {
	globalManager.retirements.Add(float64(n))
}

// Frame Loop Functions.

// RecordTick observes the duration of a tick.
func RecordTick(durationMs float64) {
	globalManager.ticks.Inc()
	globalManager.tickDuration.Observe(durationMs)
}

// Input Queue Functions.

// UpdateInputQueueSize sets the pending input gauge.
func UpdateInputQueueSize(size int) {
	globalManager.inputQueueSize.Set(float64(size))
}

// RecordInputDropped counts an input that never reached the session.
func RecordInputDropped() {
	globalManager.inputQueueDropped.Inc()
}

// RecordInputApplied counts an input applied by the driver.
func RecordInputApplied(kind string) {
	globalManager.inputsApplied.WithLabelValues(kind).Inc()
}

// Catalog Functions.

// UpdateCatalogEvents sets the number of loaded events of a kind.
func UpdateCatalogEvents(kind string, count int) {
	globalManager.catalogEvents.WithLabelValues(kind).Set(float64(count))
}

// RecordCatalogRejected counts a malformed catalog record.
func RecordCatalogRejected(kind string) {
	globalManager.catalogRejected.WithLabelValues(kind).Inc()
}

// Error Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// HTTP Functions.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
