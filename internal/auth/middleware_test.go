package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// --- Context helpers tests ---

func TestClaimsContext_RoundTrip(t *testing.T) {
	claims := &TeamClaims{TeamID: "team-1", TeamName: "Atolye Robotics"}
	ctx := ContextWithClaims(context.Background(), claims)
	got := ClaimsFromContext(ctx)
	if got == nil {
		t.Fatal("expected claims from context, got nil")
	}
	if got.TeamID != claims.TeamID {
		t.Errorf("expected team id %q, got %q", claims.TeamID, got.TeamID)
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	got := ClaimsFromContext(context.Background())
	if got != nil {
		t.Errorf("expected nil from empty context, got %+v", got)
	}
}

// --- TeamAuthMiddleware tests ---

func TestTeamAuthMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	valid, err := issuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	expiredIssuer := NewTokenIssuer("test-secret", 30*time.Minute)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			t.Error("expected claims in context inside handler")
		} else if claims.TeamID != "team-1" {
			t.Errorf("expected team id %q in context, got %q", "team-1", claims.TeamID)
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		authHeader  string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + valid,
			wantStatus: http.StatusOK,
		},
		{
			name:       "lowercase bearer",
			authHeader: "bearer " + valid,
			wantStatus: http.StatusOK,
		},
		{
			name:        "expired token",
			authHeader:  "Bearer " + expired,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "token expired",
		},
		{
			name:        "garbage token",
			authHeader:  "Bearer not-a-token",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "invalid token",
		},
		{
			name:        "missing header",
			authHeader:  "",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "missing or malformed authorization header",
		},
		{
			name:        "wrong scheme",
			authHeader:  "Basic " + valid,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "missing or malformed authorization header",
		},
		{
			name:        "bearer only no token",
			authHeader:  "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "missing or malformed authorization header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler := TeamAuthMiddleware(issuer)(okHandler)
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantMessage != "" {
				assertUnauthorized(t, rr, tt.wantMessage)
			}
		})
	}
}

func TestTeamAuthMiddleware_FailureCallback(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 30*time.Minute)

	var failures int
	handler := TeamAuthMiddleware(issuer, func() { failures++ })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if failures != 1 {
		t.Errorf("expected 1 failure callback, got %d", failures)
	}

	valid, err := issuer.Issue("team-1", "Atolye Robotics")
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if failures != 1 {
		t.Errorf("callback should not fire on success, got %d", failures)
	}
}

func assertUnauthorized(t *testing.T, rr *httptest.ResponseRecorder, wantMessage string) {
	t.Helper()

	ct := rr.Header().Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}

	var resp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error.Code != "unauthorized" {
		t.Errorf("expected error code 'unauthorized', got %q", resp.Error.Code)
	}
	if resp.Error.Message != wantMessage {
		t.Errorf("expected error message %q, got %q", wantMessage, resp.Error.Message)
	}
}
