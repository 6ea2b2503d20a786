package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores Prometheus collectors used by the request client, the
// façades, and the notification engine.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	apiRequestsTotal  *prometheus.CounterVec
	apiRetriesTotal   *prometheus.CounterVec
	apiFallbacksTotal *prometheus.CounterVec

	notificationsIngestedTotal *prometheus.CounterVec
	notificationsUnread        prometheus.Gauge
	deadlineAlertsTotal        *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aidpanel",
				Name:      "http_requests_total",
				Help:      "Total number of panel HTTP requests processed by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "aidpanel",
				Name:      "http_request_duration_seconds",
				Help:      "Panel HTTP request duration in seconds by method and path.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		apiRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aidpanel",
				Name:      "api_requests_total",
				Help:      "Total number of outbound backend requests by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
		apiRetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aidpanel",
				Name:      "api_retries_total",
				Help:      "Total number of retried backend attempts by endpoint.",
			},
			[]string{"endpoint"},
		),
		apiFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aidpanel",
				Name:      "api_fallbacks_total",
				Help:      "Total number of requests served from synthetic fixtures by endpoint and reason.",
			},
			[]string{"endpoint", "reason"},
		),
		notificationsIngestedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aidpanel",
				Name:      "notifications_ingested_total",
				Help:      "Total number of notifications ingested by type and priority.",
			},
			[]string{"type", "priority"},
		),
		notificationsUnread: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "aidpanel",
				Name:      "notifications_unread",
				Help:      "Current number of unread notifications in the collection.",
			},
		),
		deadlineAlertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "aidpanel",
				Name:      "deadline_alerts_total",
				Help:      "Total number of deadline threshold alerts fired by threshold.",
			},
			[]string{"threshold"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.apiRequestsTotal,
		m.apiRetriesTotal,
		m.apiFallbacksTotal,
		m.notificationsIngestedTotal,
		m.notificationsUnread,
		m.deadlineAlertsTotal,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := routePath(c)
		// Avoid self-scrape noise for request counters.
		if path == "/metrics" {
			return err
		}

		m.recordHTTPRequest(c.Method(), path, statusFromResult(c, err), time.Since(start))
		return err
	}
}

func (m *Metrics) IncAPIRequest(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.apiRequestsTotal.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(outcome)).Inc()
}

func (m *Metrics) IncAPIRetry(endpoint string) {
	if m == nil {
		return
	}
	m.apiRetriesTotal.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func (m *Metrics) IncAPIFallback(endpoint, reason string) {
	if m == nil {
		return
	}
	m.apiFallbacksTotal.WithLabelValues(normalizeLabel(endpoint), normalizeLabel(reason)).Inc()
}

func (m *Metrics) IncNotificationIngested(notifType, priority string) {
	if m == nil {
		return
	}
	m.notificationsIngestedTotal.WithLabelValues(normalizeLabel(notifType), normalizeLabel(priority)).Inc()
}

func (m *Metrics) SetUnreadCount(count int) {
	if m == nil {
		return
	}
	if count < 0 {
		count = 0
	}
	m.notificationsUnread.Set(float64(count))
}

func (m *Metrics) IncDeadlineAlert(threshold string) {
	if m == nil {
		return
	}
	m.deadlineAlertsTotal.WithLabelValues(normalizeLabel(threshold)).Inc()
}

func (m *Metrics) recordHTTPRequest(method string, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}

	methodLabel := strings.ToUpper(strings.TrimSpace(method))
	if methodLabel == "" {
		methodLabel = "UNKNOWN"
	}
	pathLabel := strings.TrimSpace(path)
	if pathLabel == "" {
		pathLabel = "unmatched"
	}

	m.httpRequestsTotal.WithLabelValues(methodLabel, pathLabel, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(methodLabel, pathLabel).Observe(duration.Seconds())
}

func routePath(c *fiber.Ctx) string {
	if c == nil {
		return "unmatched"
	}

	if route := c.Route(); route != nil {
		if path := strings.TrimSpace(route.Path); path != "" {
			return path
		}
	}
	return "unmatched"
}

func statusFromResult(c *fiber.Ctx, err error) int {
	if err != nil {
		if fiberErr, ok := err.(*fiber.Error); ok {
			return fiberErr.Code
		}
		return fiber.StatusInternalServerError
	}

	if c == nil {
		return fiber.StatusOK
	}

	status := c.Response().StatusCode()
	if status == 0 {
		return fiber.StatusOK
	}
	return status
}

func normalizeLabel(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "unknown"
	}
	return normalized
}
