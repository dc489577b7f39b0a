// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use through a nil pointer; every method is then a no-op.
type Metrics struct {
	// requestsTotal counts HTTP requests by method, route and status
	requestsTotal *prometheus.CounterVec

	// requestDuration tracks handler latency by method and route
	requestDuration *prometheus.HistogramVec

	// domainEvents counts successful domain actions (likes, follows, ...)
	domainEvents *prometheus.CounterVec

	// notificationsCreated counts notifications by type
	notificationsCreated *prometheus.CounterVec

	// rateLimited counts requests rejected by the auth rate limiter
	rateLimited *prometheus.CounterVec
}

// New registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "socialfeed_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
		}, []string{"method", "route"}),
		domainEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_domain_events_total",
			Help: "Total successful domain operations by event",
		}, []string{"event"}),
		notificationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_notifications_created_total",
			Help: "Total notifications created by type",
		}, []string{"type"}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socialfeed_rate_limited_total",
			Help: "Total requests rejected by rate limiting",
		}, []string{"route"}),
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordEvent(event string) {
	if m == nil {
		return
	}
	m.domainEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) RecordNotification(notificationType string) {
	if m == nil {
		return
	}
	m.notificationsCreated.WithLabelValues(notificationType).Inc()
}

func (m *Metrics) RecordRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}
