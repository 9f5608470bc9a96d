package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/atolyedev/atolye/internal/course"
	"github.com/atolyedev/atolye/internal/team"
	"github.com/go-chi/chi/v5"
)

// courseStore is the subset of course.Store used by the HTTP handlers.
type courseStore interface {
	List(ctx context.Context) ([]*course.Course, error)
	GetByID(ctx context.Context, id string) (*course.Course, error)
}

// coursesHandler groups the read-only course HTTP handlers.
type coursesHandler struct {
	store courseStore
	teams teamStore
}

func newCoursesHandler(store courseStore, teams teamStore) *coursesHandler {
	return &coursesHandler{store: store, teams: teams}
}

// enrich attaches the instructor team's public profile to each course. A
// missing instructor team leaves the field null rather than failing the
// listing.
func (h *coursesHandler) enrich(ctx context.Context, courses []*course.Course) []*course.Enriched {
	instructors := map[string]*team.PublicView{}
	enriched := make([]*course.Enriched, 0, len(courses))
	for _, c := range courses {
		e := &course.Enriched{Course: *c}
		if c.InstructorTeamID != "" {
			view, ok := instructors[c.InstructorTeamID]
			if !ok {
				if t, err := h.teams.GetByID(ctx, c.InstructorTeamID); err == nil {
					v := t.Public()
					view = &v
				}
				instructors[c.InstructorTeamID] = view
			}
			e.InstructorTeam = view
		}
		enriched = append(enriched, e)
	}
	return enriched
}

// List handles GET /api/courses.
func (h *coursesHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list courses")
		return
	}

	writeJSON(w, http.StatusOK, h.enrich(r.Context(), courses))
}

// Get handles GET /api/courses/{id}.
func (h *coursesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "course id is required")
		return
	}

	c, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "course not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to get course")
		return
	}

	enriched := h.enrich(r.Context(), []*course.Course{c})
	writeJSON(w, http.StatusOK, enriched[0])
}
