package material

import (
	"time"

	"github.com/atolyedev/atolye/internal/team"
)

// Type classifies an uploaded learning material.
type Type string

const (
	TypeDocument     Type = "document"
	TypeVideo        Type = "video"
	TypeImage        Type = "image"
	TypePresentation Type = "presentation"
	TypeCode         Type = "code"
	TypeOther        Type = "other"
)

// ValidType reports whether s is a known material type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeDocument, TypeVideo, TypeImage, TypePresentation, TypeCode, TypeOther:
		return true
	}
	return false
}

// Material is an uploaded learning artifact owned by one team. The owning
// team id is immutable after creation.
type Material struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        Type      `json:"material_type"`
	FileData    string    `json:"file_data"` // base64-encoded payload
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"` // decoded size in bytes
	MimeType    string    `json:"mime_type"`
	IsPublic    bool      `json:"is_public"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicMaterial is a public material enriched with the owning team's
// narrow projection.
type PublicMaterial struct {
	Material
	TeamInfo *team.Info `json:"team_info"`
}

// CreateMaterialInput holds the fields for a new material. FileSize must be
// the decoded length of FileData; the handler validates this before the
// store is called.
type CreateMaterialInput struct {
	TeamID      string
	Title       string
	Description string
	Type        Type
	FileData    string
	FileName    string
	FileSize    int64
	MimeType    string
	IsPublic    bool
	Tags        []string
}
