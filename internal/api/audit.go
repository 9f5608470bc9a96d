package api

import (
	"log/slog"
	"net/http"

	"github.com/atolyedev/atolye/internal/auth"
)

// auditLog emits a structured audit log entry for a mutating action.
func auditLog(r *http.Request, action string, resourceType string, resourceID string, detail ...any) {
	attrs := []any{
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip", clientIP(r),
		"request_id", RequestIDFromContext(r.Context()),
	}

	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		attrs = append(attrs, "team_id", claims.TeamID, "team_name", claims.TeamName)
	}

	attrs = append(attrs, detail...)
	slog.Info("audit", attrs...)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
