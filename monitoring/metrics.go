package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	gatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total backend requests by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of backend requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	bookingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by outcome",
		},
		[]string{"outcome"},
	)

	ticketsExported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_exported_total",
			Help: "Total ticket documents rendered",
		},
	)

	payments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Payment form submissions by method and outcome",
		},
		[]string{"method", "status"},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)
)

// Monitor records client metrics. A nil *Monitor is valid and records nothing,
// so services can run without metrics in CLI mode.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// Run samples runtime metrics until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	if m == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.collectGoroutineMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.collectGoroutineMetrics()
		}
	}
}

func (m *Monitor) collectGoroutineMetrics() {
	goroutineCount.Set(float64(runtime.NumGoroutine()))
}

// Track gateway requests
func (m *Monitor) TrackGatewayRequest(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	gatewayRequests.WithLabelValues(operation, status).Inc()
	gatewayDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Monitor) TrackBookingSubmission(outcome string) {
	if m == nil {
		return
	}
	bookingSubmissions.WithLabelValues(outcome).Inc()
}

func (m *Monitor) TrackTicketExport() {
	if m == nil {
		return
	}
	ticketsExported.Inc()
}

func (m *Monitor) TrackPayment(method, status string) {
	if m == nil {
		return
	}
	payments.WithLabelValues(method, status).Inc()
}

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
