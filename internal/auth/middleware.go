package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

type contextKey int

const claimsContextKey contextKey = iota

// ContextWithClaims returns a new context carrying the given team claims.
func ContextWithClaims(ctx context.Context, claims *TeamClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the team claims from the context, or nil if not
// present.
func ClaimsFromContext(ctx context.Context) *TeamClaims {
	claims, _ := ctx.Value(claimsContextKey).(*TeamClaims)
	return claims
}

// TeamAuthMiddleware returns middleware that authenticates requests using a
// bearer token in the Authorization header. The token is verified by the
// issuer and on success the team claims are injected into the request
// context. A missing or malformed header is rejected before any handler
// logic runs.
//
// The optional onFailure callbacks are invoked on every rejected request
// (used for metrics).
func TeamAuthMiddleware(issuer *TokenIssuer, onFailure ...func()) func(http.Handler) http.Handler {
	reject := func(w http.ResponseWriter, message string) {
		for _, fn := range onFailure {
			fn()
		}
		writeUnauthorized(w, message)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				reject(w, "missing or malformed authorization header")
				return
			}

			claims, err := issuer.Verify(token)
			if err != nil {
				if errors.Is(err, ErrTokenExpired) {
					reject(w, "token expired")
				} else {
					reject(w, "invalid token")
				}
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorBody{
			Code:    "unauthorized",
			Message: message,
		},
	})
}
