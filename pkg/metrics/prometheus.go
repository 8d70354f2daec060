// Package metrics provides Prometheus metrics for the battle game.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// damageBuckets covers single-hit damage; the largest archetype roll is 30
// plus accumulated lasting damage.
var damageBuckets = []float64{0, 2, 4, 6, 8, 10, 12, 15, 20, 25, 30, 40, 60} //nolint:gochecknoglobals // bucket layout

// Manager manages all Prometheus metrics for the game.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Match lifecycle
	matchesStarted  prometheus.Counter
	matchesFinished *prometheus.CounterVec
	matchesAbandon  prometheus.Counter
	roundsResolved  *prometheus.CounterVec
	activeMatches   prometheus.Gauge
	coinTosses      *prometheus.CounterVec

	// Combat
	attacks      *prometheus.CounterVec
	attackDamage *prometheus.HistogramVec
	heals        prometheus.Counter

	// Leaderboard
	winsRecorded       prometheus.Counter
	leaderboardEntries prometheus.Gauge

	// Store
	storeLatency *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "battle",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}
	if !m.enabled {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.matchesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("matches_started_total"),
		Help:        "Total number of matches created",
		ConstLabels: labels,
	})

	m.matchesFinished = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("matches_finished_total"),
		Help:        "Total number of matches that reached the final round, by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.matchesAbandon = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("matches_abandoned_total"),
		Help:        "Total number of matches left before they were over",
		ConstLabels: labels,
	})

	m.roundsResolved = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rounds_resolved_total"),
		Help:        "Total number of rounds resolved, by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.activeMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("active_matches"),
		Help:        "Matches created but not yet finished",
		ConstLabels: labels,
	})

	m.coinTosses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("coin_tosses_total"),
		Help:        "Coin toss outcomes",
		ConstLabels: labels,
	}, []string{"side"})

	m.attacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("attacks_total"),
		Help:        "Attacks resolved, by attacking archetype and strength",
		ConstLabels: labels,
	}, []string{"archetype", "strength"})

	m.attackDamage = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("attack_damage"),
		Help:        "Damage dealt per attack, split into opponent and self damage",
		Buckets:     damageBuckets,
		ConstLabels: labels,
	}, []string{"target"})

	m.heals = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("heals_total"),
		Help:        "Health archetype regenerations",
		ConstLabels: labels,
	})

	m.winsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("leaderboard_wins_recorded_total"),
		Help:        "Match wins written to the leaderboard",
		ConstLabels: labels,
	})

	m.leaderboardEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("leaderboard_entries"),
		Help:        "Distinct names on the leaderboard",
		ConstLabels: labels,
	})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("store_operation_latency_milliseconds"),
		Help:        "Latency of leaderboard store operations in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	}, []string{"driver", "operation"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_seconds"),
		Help:        "HTTP request duration in seconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Errors by component and type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})
}

// RecordMatchStarted counts a new match and raises the active gauge.
func RecordMatchStarted() {
	globalManager.matchesStarted.Inc()
	globalManager.activeMatches.Inc()
}

// RecordMatchFinished counts a finished match ("win" or "draw").
func RecordMatchFinished(outcome string) {
	globalManager.matchesFinished.WithLabelValues(outcome).Inc()
}

// RecordMatchAbandoned counts a match left before it was over.
func RecordMatchAbandoned() {
	globalManager.matchesAbandon.Inc()
}

// RecordMatchClosed lowers the active gauge. Call it once per started match,
// whether it finished or was abandoned.
func RecordMatchClosed() {
	globalManager.activeMatches.Dec()
}

// RecordRoundResolved counts a resolved round ("win" or "draw").
func RecordRoundResolved(outcome string) {
	globalManager.roundsResolved.WithLabelValues(outcome).Inc()
}

// RecordCoinToss counts a coin toss outcome.
func RecordCoinToss(side string) {
	globalManager.coinTosses.WithLabelValues(side).Inc()
}

// RecordAttack counts an attack and observes the damage it dealt.
func RecordAttack(archetype, strength string, toOpponent, toSelf int) {
	globalManager.attacks.WithLabelValues(archetype, strength).Inc()
	globalManager.attackDamage.WithLabelValues("opponent").Observe(float64(toOpponent))
	globalManager.attackDamage.WithLabelValues("self").Observe(float64(toSelf))
}

// RecordHeal counts a regeneration.
func RecordHeal() {
	globalManager.heals.Inc()
}

// RecordLeaderboardWin counts a win written to the leaderboard.
func RecordLeaderboardWin() {
	globalManager.winsRecorded.Inc()
}

// UpdateLeaderboardEntries sets the number of names on the leaderboard.
func UpdateLeaderboardEntries(count int) {
	globalManager.leaderboardEntries.Set(float64(count))
}

// RecordStoreLatency records a store operation latency in milliseconds.
func RecordStoreLatency(driver, operation string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(driver, operation).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the registry the global manager publishes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
