package api

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"time"

	"github.com/atolyedev/atolye/internal/auth"
	"github.com/atolyedev/atolye/internal/team"
	"github.com/go-chi/chi/v5"
)

// teamStore is the subset of team.Store used by the HTTP handlers.
type teamStore interface {
	Create(ctx context.Context, in team.CreateTeamInput) (*team.Team, error)
	GetByID(ctx context.Context, id string) (*team.Team, error)
	GetByEmail(ctx context.Context, email string) (*team.Team, error)
	Update(ctx context.Context, id string, in team.UpdateTeamInput) (*team.Team, error)
}

// teamsHandler groups team identity HTTP handlers.
type teamsHandler struct {
	store        teamStore
	issuer       *auth.TokenIssuer
	onRegistered func()
	onLogin      func(ok bool)
}

func newTeamsHandler(store teamStore, issuer *auth.TokenIssuer, onRegistered func(), onLogin func(ok bool)) *teamsHandler {
	if onRegistered == nil {
		onRegistered = func() {}
	}
	if onLogin == nil {
		onLogin = func(bool) {}
	}
	return &teamsHandler{store: store, issuer: issuer, onRegistered: onRegistered, onLogin: onLogin}
}

// tokenResponse is the shape returned by register and login.
type tokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	TeamProfile *team.Team `json:"team_profile"`
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// Register handles POST /api/teams/register.
func (h *teamsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"team_name"`
		Number      string `json:"team_number"`
		Email       string `json:"contact_email"`
		Password    string `json:"password"`
		Description string `json:"description"`
		Location    string `json:"location"`
		FoundedYear int    `json:"founded_year"`
		Website     string `json:"website"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	if len(req.Name) < 2 || len(req.Name) > 100 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "team_name must be 2-100 characters")
		return
	}
	if !validEmail(req.Email) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "contact_email must be a valid email address")
		return
	}
	if len(req.Password) < 6 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "password must be at least 6 characters")
		return
	}
	if len(req.Description) > 500 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "description must be at most 500 characters")
		return
	}
	if req.FoundedYear != 0 && (req.FoundedYear < 1900 || req.FoundedYear > time.Now().Year()) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "founded_year is out of range")
		return
	}

	t, err := h.store.Create(r.Context(), team.CreateTeamInput{
		Name:         req.Name,
		Number:       req.Number,
		ContactEmail: req.Email,
		Password:     req.Password,
		Description:  req.Description,
		Location:     req.Location,
		FoundedYear:  req.FoundedYear,
		Website:      req.Website,
	})
	if err != nil {
		if errors.Is(err, team.ErrConflict) {
			writeError(w, http.StatusConflict, "conflict", "team with this name or email already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to create team")
		return
	}

	token, err := h.issuer.Issue(t.ID, t.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	h.onRegistered()
	auditLog(r, "team.register", "team", t.ID)

	writeJSON(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		TeamProfile: t,
	})
}

// Login handles POST /api/teams/login. A wrong password and an unknown email
// produce the identical response, so callers cannot enumerate accounts.
func (h *teamsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "email and password are required")
		return
	}

	t, err := h.store.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, team.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get team")
		return
	}
	if err != nil || !auth.CheckPassword(req.Password, t.PasswordHash) {
		h.onLogin(false)
		writeError(w, http.StatusUnauthorized, "unauthorized", "invalid email or password")
		return
	}

	token, err := h.issuer.Issue(t.ID, t.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	h.onLogin(true)

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		TeamProfile: t,
	})
}

// GetProfile handles GET /api/teams/profile.
func (h *teamsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	t, err := h.store.GetByID(r.Context(), claims.TeamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get team")
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// UpdateProfile handles PUT /api/teams/profile. Only fields present in the
// request body are applied; absent fields keep their prior value.
func (h *teamsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	var input team.UpdateTeamInput
	if err := readJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	if input.Name != nil && (len(*input.Name) < 2 || len(*input.Name) > 100) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "team_name must be 2-100 characters")
		return
	}
	if input.Description != nil && len(*input.Description) > 500 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "description must be at most 500 characters")
		return
	}
	if input.FoundedYear != nil && (*input.FoundedYear < 1900 || *input.FoundedYear > time.Now().Year()) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "founded_year is out of range")
		return
	}

	t, err := h.store.Update(r.Context(), claims.TeamID, input)
	if err != nil {
		switch {
		case errors.Is(err, team.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "team not found")
		case errors.Is(err, team.ErrConflict):
			writeError(w, http.StatusConflict, "conflict", "team name already taken")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to update team")
		}
		return
	}

	auditLog(r, "team.update_profile", "team", t.ID)

	writeJSON(w, http.StatusOK, t)
}

// GetPublicProfile handles GET /api/teams/{id}/public. Inactive teams are
// reported as missing; the response never carries the contact email.
func (h *teamsHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "team id is required")
		return
	}

	t, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get team")
		return
	}
	if !t.IsActive {
		writeError(w, http.StatusNotFound, "not_found", "team not found")
		return
	}

	writeJSON(w, http.StatusOK, t.Public())
}
