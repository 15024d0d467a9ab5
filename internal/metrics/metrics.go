package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "travel_http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	LeadsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_leads_created_total",
		Help: "Leads captured from public forms, by inquiry type",
	}, []string{"type"})

	DuplicateLeadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travel_leads_duplicate_total",
		Help: "Lead submissions rejected by the duplicate-window guard",
	})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travel_notification_failures_total",
		Help: "Fire-and-forget notification dispatches that failed, by channel",
	}, []string{"channel"})

	CaptchaFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travel_captcha_failures_total",
		Help: "Lead submissions rejected by the captcha gate",
	})
)
