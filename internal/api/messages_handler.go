package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/atolyedev/atolye/internal/auth"
	"github.com/atolyedev/atolye/internal/mailer"
	"github.com/atolyedev/atolye/internal/message"
	"github.com/atolyedev/atolye/internal/team"
	"github.com/go-chi/chi/v5"
)

// messageStore is the subset of message.Store used by the HTTP handlers.
type messageStore interface {
	Create(ctx context.Context, in message.CreateMessageInput) (*message.Message, error)
	ListByTeam(ctx context.Context, teamID string) ([]*message.Message, error)
	MarkRead(ctx context.Context, id, teamID string) error
}

// messagesHandler groups contact message HTTP handlers.
type messagesHandler struct {
	store    messageStore
	teams    teamStore
	notifier mailer.Notifier
	onSent   func()
}

func newMessagesHandler(store messageStore, teams teamStore, notifier mailer.Notifier, onSent func()) *messagesHandler {
	if notifier == nil {
		notifier = mailer.LogNotifier{}
	}
	if onSent == nil {
		onSent = func() {}
	}
	return &messagesHandler{store: store, teams: teams, notifier: notifier, onSent: onSent}
}

// Contact handles POST /api/teams/{id}/contact. The sender does not
// authenticate; the message lands in the target team's inbox unread.
func (h *messagesHandler) Contact(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "team id is required")
		return
	}

	var req struct {
		FromName  string `json:"from_name"`
		FromEmail string `json:"from_email"`
		Subject   string `json:"subject"`
		Body      string `json:"message"`
		CourseID  string `json:"course_id"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	if len(req.FromName) < 1 || len(req.FromName) > 100 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "from_name must be 1-100 characters")
		return
	}
	if !validEmail(req.FromEmail) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "from_email must be a valid email address")
		return
	}
	if len(req.Subject) < 1 || len(req.Subject) > 200 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "subject must be 1-200 characters")
		return
	}
	if len(req.Body) < 10 || len(req.Body) > 2000 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "message must be 10-2000 characters")
		return
	}

	target, err := h.teams.GetByID(r.Context(), teamID)
	if err != nil {
		if errors.Is(err, team.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "team not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get team")
		return
	}

	m, err := h.store.Create(r.Context(), message.CreateMessageInput{
		FromName:  req.FromName,
		FromEmail: req.FromEmail,
		ToTeamID:  teamID,
		Subject:   req.Subject,
		Body:      req.Body,
		CourseID:  req.CourseID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to send message")
		return
	}

	// Delivery is best-effort; the message is already persisted.
	if err := h.notifier.ContactReceived(r.Context(), target, m); err != nil {
		slog.Warn("contact notification failed", "message_id", m.ID, "error", err)
	}

	h.onSent()

	writeJSON(w, http.StatusCreated, map[string]string{"message": "message sent successfully to team"})
}

// Inbox handles GET /api/teams/messages — the calling team's inbox, newest
// first.
func (h *messagesHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	messages, err := h.store.ListByTeam(r.Context(), claims.TeamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list messages")
		return
	}

	if messages == nil {
		messages = []*message.Message{}
	}

	writeJSON(w, http.StatusOK, messages)
}

// MarkRead handles PUT /api/teams/messages/{id}/read. A message addressed to
// another team yields the same 404 as a missing one.
func (h *messagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "message id is required")
		return
	}

	if err := h.store.MarkRead(r.Context(), id, claims.TeamID); err != nil {
		if errors.Is(err, message.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "message not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to mark message read")
		return
	}

	auditLog(r, "message.mark_read", "message", id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "message marked as read"})
}
