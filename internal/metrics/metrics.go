package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metric collectors for the Atolye backend.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics.
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Domain metrics.
	MaterialUploadsTotal   *prometheus.CounterVec
	MaterialUploadBytes    prometheus.Histogram
	ContactMessagesTotal   prometheus.Counter
	TeamRegistrationsTotal prometheus.Counter

	// Rate limiting metrics.
	RateLimitRejectionsTotal *prometheus.CounterVec

	// Auth metrics.
	AuthFailuresTotal  *prometheus.CounterVec
	AuthSuccessesTotal *prometheus.CounterVec

	// Server lifecycle.
	ServerStartTime prometheus.Gauge
}

// New creates and registers all Prometheus metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atolye_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atolye_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path_pattern"}),

		HTTPResponseSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atolye_http_response_size_bytes",
			Help:    "HTTP response size in bytes.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		}, []string{"method", "path_pattern"}),

		MaterialUploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atolye_material_uploads_total",
			Help: "Total number of material uploads by type and outcome.",
		}, []string{"material_type", "outcome"}),

		MaterialUploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "atolye_material_upload_bytes",
			Help:    "Decoded size of uploaded materials in bytes.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),

		ContactMessagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "atolye_contact_messages_total",
			Help: "Total number of contact messages recorded.",
		}),

		TeamRegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "atolye_team_registrations_total",
			Help: "Total number of team registrations.",
		}),

		RateLimitRejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atolye_ratelimit_rejections_total",
			Help: "Total number of rate limit rejections.",
		}, []string{"scope"}),

		AuthFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atolye_auth_failures_total",
			Help: "Total number of authentication failures.",
		}, []string{"auth_type"}),

		AuthSuccessesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atolye_auth_successes_total",
			Help: "Total number of successful authentications.",
		}, []string{"auth_type"}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atolye_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPResponseSize,
		m.MaterialUploadsTotal,
		m.MaterialUploadBytes,
		m.ContactMessagesTotal,
		m.TeamRegistrationsTotal,
		m.RateLimitRejectionsTotal,
		m.AuthFailuresTotal,
		m.AuthSuccessesTotal,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterDBPoolCollector registers a custom DB pool stats collector.
func (m *Metrics) RegisterDBPoolCollector(statFunc DBPoolStatFunc) {
	m.registry.MustRegister(NewDBPoolCollector(statFunc))
}

// ObserveRequest records a served HTTP request.
func (m *Metrics) ObserveRequest(method, pathPattern string, statusCode int, duration time.Duration, responseBytes int) {
	m.HTTPRequestsTotal.WithLabelValues(method, pathPattern, fmt.Sprintf("%d", statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pathPattern).Observe(duration.Seconds())
	m.HTTPResponseSize.WithLabelValues(method, pathPattern).Observe(float64(responseBytes))
}

// IncAuthFailure increments the auth failure counter for the given auth type.
func (m *Metrics) IncAuthFailure(authType string) {
	m.AuthFailuresTotal.WithLabelValues(authType).Inc()
}

// IncAuthSuccess increments the auth success counter for the given auth type.
func (m *Metrics) IncAuthSuccess(authType string) {
	m.AuthSuccessesTotal.WithLabelValues(authType).Inc()
}

// IncRateLimitRejection increments the rate limit rejection counter.
func (m *Metrics) IncRateLimitRejection(scope string) {
	m.RateLimitRejectionsTotal.WithLabelValues(scope).Inc()
}

// ObserveMaterialUpload records a material upload attempt.
func (m *Metrics) ObserveMaterialUpload(materialType, outcome string, decodedBytes int64) {
	m.MaterialUploadsTotal.WithLabelValues(materialType, outcome).Inc()
	if outcome == "ok" {
		m.MaterialUploadBytes.Observe(float64(decodedBytes))
	}
}
