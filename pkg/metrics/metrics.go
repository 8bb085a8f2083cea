package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках
// вызывающий код может передавать nil и не проверять его.
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	bookingsCreated       *prometheus.CounterVec
	availabilityConflicts *prometheus.CounterVec
	statusTransitions     *prometheus.CounterVec
	roleClaims            *prometheus.CounterVec
	notifications         *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		dbOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		dbInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		dbIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		bookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_bookings_created_total",
			Help: "Total number of created bookings",
		}, []string{"service"}),

		availabilityConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_availability_conflicts_total",
			Help: "Total number of rejected windows due to overlapping bookings",
		}, []string{"service", "operation"}),

		statusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_status_transitions_total",
			Help: "Total number of applied trip status transitions",
		}, []string{"service", "from", "to"}),

		roleClaims: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_role_claims_total",
			Help: "Dispatch role claims by outcome",
		}, []string{"service", "role", "outcome"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_notifications_total",
			Help: "Domain event deliveries by outcome",
		}, []string{"service", "outcome"}),
	}
}

// ObserveHTTPRequest записывает метрики одного HTTP-запроса
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil {
		m.dbQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbInUseConns.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.dbIdleConns.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.serviceName).Inc()
}

// IncAvailabilityConflict operation: create | extend
func (m *Metrics) IncAvailabilityConflict(operation string) {
	if m == nil {
		return
	}
	m.availabilityConflicts.WithLabelValues(m.serviceName, operation).Inc()
}

func (m *Metrics) IncStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(m.serviceName, from, to).Inc()
}

// IncRoleClaim outcome: claimed | already_assigned | not_found
func (m *Metrics) IncRoleClaim(role, outcome string) {
	if m == nil {
		return
	}
	m.roleClaims.WithLabelValues(m.serviceName, role, outcome).Inc()
}

// IncNotification outcome: delivered | failed | dropped
func (m *Metrics) IncNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(m.serviceName, outcome).Inc()
}
