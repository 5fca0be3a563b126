package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Meeting metrics
	MeetingSymbolsTotal *prometheus.CounterVec
	MeetingDuration     *prometheus.HistogramVec
	MeetingErrorsTotal  *prometheus.CounterVec

	// Decision metrics
	DecisionActions *prometheus.CounterVec
	DecisionScores  *prometheus.HistogramVec
	DecisionWeights *prometheus.HistogramVec

	// Agent metrics
	AgentDuration *prometheus.HistogramVec
	AgentScores   *prometheus.HistogramVec

	// Market data provider metrics
	ProviderRequestsTotal *prometheus.CounterVec
	ProviderErrorsTotal   *prometheus.CounterVec
	ProviderDuration      *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryTotal    *prometheus.CounterVec
	DBErrorsTotal   *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// scoreBuckets cover the bounded agent/composite score range [-1, 1]
var scoreBuckets = []float64{-1, -0.75, -0.5, -0.25, -0.1, 0, 0.1, 0.25, 0.5, 0.75, 1}

// weightBuckets cover the position weight range [0, 1]
var weightBuckets = []float64{0, 0.02, 0.05, 0.1, 0.15, 0.2, 0.3, 0.5, 1}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		MeetingSymbolsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "meeting",
				Name:      "symbols_total",
				Help:      "Total number of symbols processed by investment meetings",
			},
			[]string{"symbol"},
		),
		MeetingDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "meeting",
				Name:      "symbol_duration_seconds",
				Help:      "Duration of per-symbol pipeline runs in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"symbol", "status"},
		),
		MeetingErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "meeting",
				Name:      "errors_total",
				Help:      "Total number of per-symbol pipeline failures",
			},
			[]string{"symbol", "error_type"},
		),
		DecisionActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "decision",
				Name:      "actions_total",
				Help:      "Total number of decisions by order action",
			},
			[]string{"action"},
		),
		DecisionScores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "decision",
				Name:      "composite_score",
				Help:      "Distribution of composite decision scores",
				Buckets:   scoreBuckets,
			},
			[]string{"action"},
		),
		DecisionWeights: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "decision",
				Name:      "position_weight",
				Help:      "Distribution of synthesized position weights",
				Buckets:   weightBuckets,
			},
			[]string{"action"},
		),
		AgentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "agent",
				Name:      "duration_seconds",
				Help:      "Duration of agent analysis in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"agent"},
		),
		AgentScores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "agent",
				Name:      "score",
				Help:      "Distribution of agent scores",
				Buckets:   scoreBuckets,
			},
			[]string{"agent"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "provider",
				Name:      "requests_total",
				Help:      "Total number of market data provider requests",
			},
			[]string{"service", "operation"},
		),
		ProviderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "provider",
				Name:      "errors_total",
				Help:      "Total number of market data provider errors",
			},
			[]string{"service", "operation"},
		),
		ProviderDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "provider",
				Name:      "duration_seconds",
				Help:      "Duration of market data provider calls in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"service", "operation"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "database",
				Name:      "query_duration_seconds",
				Help:      "Duration of database queries in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"operation", "table"},
		),
		DBQueryTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "database",
				Name:      "queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		DBErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "database",
				Name:      "errors_total",
				Help:      "Total number of database errors",
			},
			[]string{"operation", "table"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "investment_company",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		CircuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "investment_company",
				Subsystem: "circuit_breaker",
				Name:      "state",
				Help:      "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
			},
			[]string{"service"},
		),
		CircuitBreakerTrips: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "investment_company",
				Subsystem: "circuit_breaker",
				Name:      "trips_total",
				Help:      "Total number of circuit breaker trips",
			},
			[]string{"service"},
		),
	}
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordMeetingSymbol records a symbol entering the pipeline
func (m *Metrics) RecordMeetingSymbol(symbol string) {
	m.MeetingSymbolsTotal.WithLabelValues(symbol).Inc()
}

// RecordMeetingError records a per-symbol pipeline failure
func (m *Metrics) RecordMeetingError(symbol, errorType string) {
	m.MeetingErrorsTotal.WithLabelValues(symbol, errorType).Inc()
}

// RecordDecision records a synthesized decision
func (m *Metrics) RecordDecision(action string, compositeScore, weight float64) {
	m.DecisionActions.WithLabelValues(action).Inc()
	m.DecisionScores.WithLabelValues(action).Observe(compositeScore)
	m.DecisionWeights.WithLabelValues(action).Observe(weight)
}

// RecordAgentScore records an agent score
func (m *Metrics) RecordAgentScore(agent string, score float64) {
	m.AgentScores.WithLabelValues(agent).Observe(score)
}

// RecordProviderRequest records a market data provider request
func (m *Metrics) RecordProviderRequest(service, operation string) {
	m.ProviderRequestsTotal.WithLabelValues(service, operation).Inc()
}

// RecordProviderError records a market data provider error
func (m *Metrics) RecordProviderError(service, operation string) {
	m.ProviderErrorsTotal.WithLabelValues(service, operation).Inc()
}

// RecordDBError records a database error
func (m *Metrics) RecordDBError(operation, table string) {
	m.DBErrorsTotal.WithLabelValues(operation, table).Inc()
}

// RecordHTTPRequest records a completed HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the current state of a circuit breaker
func (m *Metrics) SetCircuitBreakerState(service string, state int) {
	m.CircuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(service string) {
	m.CircuitBreakerTrips.WithLabelValues(service).Inc()
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{start: time.Now(), metrics: m}
}

// ObserveMeetingSymbol records the per-symbol pipeline duration and status
func (t *Timer) ObserveMeetingSymbol(symbol, status string) {
	t.metrics.MeetingDuration.WithLabelValues(symbol, status).Observe(time.Since(t.start).Seconds())
}

// ObserveAgent records the agent analysis duration
func (t *Timer) ObserveAgent(agent string) {
	t.metrics.AgentDuration.WithLabelValues(agent).Observe(time.Since(t.start).Seconds())
}

// ObserveProvider records the market data call duration
func (t *Timer) ObserveProvider(service, operation string) {
	t.metrics.ProviderDuration.WithLabelValues(service, operation).Observe(time.Since(t.start).Seconds())
}

// ObserveDB records the database query duration and counts the query
func (t *Timer) ObserveDB(operation, table string) {
	t.metrics.DBQueryTotal.WithLabelValues(operation, table).Inc()
	t.metrics.DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
