package course

import (
	"time"

	"github.com/atolyedev/atolye/internal/team"
)

// Course is a read-mostly learning course, optionally taught by a team.
type Course struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Duration         string    `json:"duration"`
	Level            string    `json:"level"`
	ImageURL         string    `json:"image_url"`
	InstructorTeamID string    `json:"instructor_team_id,omitempty"`
	Content          string    `json:"content,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Enriched is a course with the instructor team's public profile attached,
// when an instructor is set and still exists.
type Enriched struct {
	Course
	InstructorTeam *team.PublicView `json:"instructor_team"`
}

// CreateCourseInput holds the fields for a new course (used by seeding).
type CreateCourseInput struct {
	Title            string
	Description      string
	Category         string
	Duration         string
	Level            string
	ImageURL         string
	InstructorTeamID string
	Content          string
}
