package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBQueryDuration    *prometheus.HistogramVec

	BookingsCreatedTotal       *prometheus.CounterVec
	PaymentVerificationsTotal  *prometheus.CounterVec
	BookingStatusChangesTotal  *prometheus.CounterVec
	LifecycleCompletedBookings prometheus.Counter
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (удобно для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		BookingsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of bookings created by payment mode",
			ConstLabels: constLabels,
		}, []string{"mode"}),

		PaymentVerificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_verifications_total",
			Help:        "Payment verification results",
			ConstLabels: constLabels,
		}, []string{"result"}),

		BookingStatusChangesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_changes_total",
			Help:        "Booking status transitions by target status",
			ConstLabels: constLabels,
		}, []string{"status"}),

		LifecycleCompletedBookings: factory.NewCounter(prometheus.CounterOpts{
			Name:        "lifecycle_completed_bookings_total",
			Help:        "Bookings moved to completed by the lifecycle job",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveBookingCreated увеличивает счетчик созданных бронирований
// Безопасно вызывать на nil
func (m *Metrics) ObserveBookingCreated(mode string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(mode).Inc()
}

// ObservePaymentVerification фиксирует результат проверки платежа
func (m *Metrics) ObservePaymentVerification(result string) {
	if m == nil {
		return
	}
	m.PaymentVerificationsTotal.WithLabelValues(result).Inc()
}

// ObserveStatusChange фиксирует смену статуса бронирования
func (m *Metrics) ObserveStatusChange(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChangesTotal.WithLabelValues(status).Inc()
}

// ObserveLifecycleCompleted добавляет количество завершенных фоновой задачей бронирований
func (m *Metrics) ObserveLifecycleCompleted(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.LifecycleCompletedBookings.Add(float64(n))
}
