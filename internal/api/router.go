package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/atolyedev/atolye/internal/auth"
	"github.com/atolyedev/atolye/internal/mailer"
	"github.com/atolyedev/atolye/internal/metrics"
	"github.com/atolyedev/atolye/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// dbPinger is the health-check view of the database pool.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps holds all dependencies for the API router.
type RouterDeps struct {
	Teams     teamStore
	Materials materialStore
	Messages  messageStore
	Courses   courseStore

	Issuer   *auth.TokenIssuer
	Limiter  *ratelimit.Limiter
	Metrics  *metrics.Metrics
	Notifier mailer.Notifier

	MaxMaterialSize int64
	AllowedOrigins  []string
	DB              dbPinger
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chimw.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(secureHeaders)
	r.Use(corsMiddleware(deps.AllowedOrigins))
	r.Use(slogRequestLogger)
	if deps.Metrics != nil {
		r.Use(metricsMiddleware(deps.Metrics))
	}

	// Metric callbacks are optional so handlers stay testable without a
	// metrics registry.
	var onRegistered func()
	var onLogin func(bool)
	var onUpload func(string, string, int64)
	var onSent func()
	var authFailure func()
	var publicReject func()
	if m := deps.Metrics; m != nil {
		onRegistered = func() { m.TeamRegistrationsTotal.Inc() }
		onLogin = func(ok bool) {
			if ok {
				m.IncAuthSuccess("login")
			} else {
				m.IncAuthFailure("login")
			}
		}
		onUpload = m.ObserveMaterialUpload
		onSent = func() { m.ContactMessagesTotal.Inc() }
		authFailure = func() { m.IncAuthFailure("bearer") }
		publicReject = func() { m.IncRateLimitRejection("public") }
	}

	// Handlers.
	teams := newTeamsHandler(deps.Teams, deps.Issuer, onRegistered, onLogin)
	materials := newMaterialsHandler(deps.Materials, deps.MaxMaterialSize, onUpload)
	messages := newMessagesHandler(deps.Messages, deps.Teams, deps.Notifier, onSent)
	courses := newCoursesHandler(deps.Courses, deps.Teams)

	requireTeam := func(next http.Handler) http.Handler { return next }
	if deps.Issuer != nil {
		if authFailure != nil {
			requireTeam = auth.TeamAuthMiddleware(deps.Issuer, authFailure)
		} else {
			requireTeam = auth.TeamAuthMiddleware(deps.Issuer)
		}
	}

	limitPublic := func(next http.Handler) http.Handler { return next }
	if deps.Limiter != nil {
		if publicReject != nil {
			limitPublic = ratelimit.PerClientMiddleware(deps.Limiter, publicReject)
		} else {
			limitPublic = ratelimit.PerClientMiddleware(deps.Limiter)
		}
	}

	// Health check.
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		dbStatus := "connected"
		if deps.DB != nil {
			if err := deps.DB.Ping(req.Context()); err != nil {
				dbStatus = "unavailable"
			}
		}
		status := http.StatusOK
		if dbStatus != "connected" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{"status": "ok", "database": dbStatus})
	})

	// Well-known manifest.
	r.Get("/.well-known/atolye.json", WellKnownHandler)

	// Prometheus metrics and JSON summary.
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics.Registry(), promhttp.HandlerOpts{}))
		r.Get("/api/metrics", deps.Metrics.SummaryHandler())
	}

	// Public (unauthenticated) routes.
	r.Group(func(pr chi.Router) {
		pr.Use(limitPublic)
		pr.Post("/api/teams/register", teams.Register)
		pr.Post("/api/teams/login", teams.Login)
		pr.Post("/api/teams/{id}/contact", messages.Contact)
	})
	r.Get("/api/teams/{id}/public", teams.GetPublicProfile)
	r.Get("/api/materials/public", materials.ListPublic)
	r.Get("/api/courses", courses.List)
	r.Get("/api/courses/{id}", courses.Get)

	// Team-authed routes (require bearer token).
	r.Group(func(tr chi.Router) {
		tr.Use(requireTeam)

		tr.Get("/api/teams/profile", teams.GetProfile)
		tr.Put("/api/teams/profile", teams.UpdateProfile)

		tr.Post("/api/teams/materials", materials.Upload)
		tr.Get("/api/teams/materials", materials.ListOwn)
		tr.Delete("/api/teams/materials/{id}", materials.Delete)

		tr.Get("/api/teams/messages", messages.Inbox)
		tr.Put("/api/teams/messages/{id}/read", messages.MarkRead)
	})

	return r
}

// slogRequestLogger is a simple structured logging middleware using slog.
func slogRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", ww.BytesWritten(),
		)
	})
}

// metricsMiddleware records per-request Prometheus metrics keyed by the chi
// route pattern, so path parameters do not explode label cardinality.
func metricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = "unmatched"
			}
			m.ObserveRequest(r.Method, pattern, ww.Status(), time.Since(start), ww.BytesWritten())
		})
	}
}
