// Package metrics содержит Prometheus-метрики HTTP-слоя и доменных операций.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты доменных операций.
const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// HTTPRequests число обработанных запросов по маршруту, методу и статусу.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of processed HTTP requests.",
	}, []string{"method", "route", "status"})

	// HTTPDuration длительность обработки запросов.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gym",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RSVPs исходы записи на занятия.
	RSVPs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "classes",
		Name:      "rsvp_total",
		Help:      "Class RSVP attempts by result.",
	}, []string{"result"})

	// SubscriptionRegistrations исходы оформления абонементов.
	SubscriptionRegistrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "subscriptions",
		Name:      "registrations_total",
		Help:      "User subscription registration attempts by result.",
	}, []string{"result"})

	// AuditPublishFailures число событий аудита, не доставленных в брокер.
	AuditPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gym",
		Subsystem: "audit",
		Name:      "publish_failures_total",
		Help:      "Audit events that could not be published to the broker.",
	})
)
