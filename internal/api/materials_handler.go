package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/atolyedev/atolye/internal/auth"
	"github.com/atolyedev/atolye/internal/material"
	"github.com/go-chi/chi/v5"
)

// materialStore is the subset of material.Store used by the HTTP handlers.
type materialStore interface {
	Create(ctx context.Context, in material.CreateMaterialInput) (*material.Material, error)
	ListByTeam(ctx context.Context, teamID string) ([]*material.Material, error)
	ListPublic(ctx context.Context) ([]*material.PublicMaterial, error)
	Delete(ctx context.Context, id, teamID string) error
}

// materialsHandler groups material HTTP handlers.
type materialsHandler struct {
	store    materialStore
	maxSize  int64
	onUpload func(materialType, outcome string, decodedBytes int64)
}

func newMaterialsHandler(store materialStore, maxSize int64, onUpload func(string, string, int64)) *materialsHandler {
	if maxSize <= 0 {
		maxSize = material.DefaultMaxPayloadSize
	}
	if onUpload == nil {
		onUpload = func(string, string, int64) {}
	}
	return &materialsHandler{store: store, maxSize: maxSize, onUpload: onUpload}
}

// Upload handles POST /api/teams/materials. The material is always owned by
// the calling team.
func (h *materialsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Type        string   `json:"material_type"`
		FileData    string   `json:"file_data"`
		FileName    string   `json:"file_name"`
		MimeType    string   `json:"mime_type"`
		IsPublic    bool     `json:"is_public"`
		Tags        []string `json:"tags"`
	}
	if err := readJSONLimit(r, &req, maxUploadBodySize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "failed to parse request body")
		return
	}

	if len(req.Title) < 1 || len(req.Title) > 200 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "title must be 1-200 characters")
		return
	}
	if len(req.Description) > 1000 {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "description must be at most 1000 characters")
		return
	}
	if !material.ValidType(req.Type) {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "unknown material_type")
		return
	}
	if req.FileName == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "file_name is required")
		return
	}

	decoded, err := material.DecodePayload(req.FileData, h.maxSize)
	if err != nil {
		switch {
		case errors.Is(err, material.ErrPayloadTooLarge):
			h.onUpload(req.Type, "too_large", 0)
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "file size too large, maximum 50MB allowed")
		default:
			h.onUpload(req.Type, "invalid", 0)
			writeError(w, http.StatusBadRequest, "invalid_payload", "invalid file data")
		}
		return
	}

	m, err := h.store.Create(r.Context(), material.CreateMaterialInput{
		TeamID:      claims.TeamID,
		Title:       req.Title,
		Description: req.Description,
		Type:        material.Type(req.Type),
		FileData:    req.FileData,
		FileName:    req.FileName,
		FileSize:    int64(len(decoded)),
		MimeType:    req.MimeType,
		IsPublic:    req.IsPublic,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to upload material")
		return
	}

	h.onUpload(req.Type, "ok", m.FileSize)
	auditLog(r, "material.upload", "material", m.ID, "file_name", m.FileName, "file_size", m.FileSize)

	writeJSON(w, http.StatusCreated, m)
}

// ListOwn handles GET /api/teams/materials — the calling team's materials,
// newest first.
func (h *materialsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	materials, err := h.store.ListByTeam(r.Context(), claims.TeamID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list materials")
		return
	}

	if materials == nil {
		materials = []*material.Material{}
	}

	writeJSON(w, http.StatusOK, materials)
}

// ListPublic handles GET /api/materials/public — public materials across all
// teams, each with the owning team's narrow projection.
func (h *materialsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	materials, err := h.store.ListPublic(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list public materials")
		return
	}

	if materials == nil {
		materials = []*material.PublicMaterial{}
	}

	writeJSON(w, http.StatusOK, materials)
}

// Delete handles DELETE /api/teams/materials/{id}. A material that does not
// exist and one owned by another team both yield 404.
func (h *materialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "material id is required")
		return
	}

	if err := h.store.Delete(r.Context(), id, claims.TeamID); err != nil {
		if errors.Is(err, material.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "material not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete material")
		return
	}

	auditLog(r, "material.delete", "material", id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "material deleted successfully"})
}
