package team

import "time"

// SocialLinks holds a team's social media profiles.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

// Team represents a registered robotics team. The password hash is never
// serialized.
type Team struct {
	ID           string      `json:"id"`
	Name         string      `json:"team_name"`
	Number       string      `json:"team_number,omitempty"`
	ContactEmail string      `json:"contact_email"`
	PasswordHash string      `json:"-"`
	Description  string      `json:"description,omitempty"`
	LogoURL      string      `json:"logo_url,omitempty"`
	Social       SocialLinks `json:"social_media"`
	Location     string      `json:"location,omitempty"`
	FoundedYear  int         `json:"founded_year,omitempty"`
	Website      string      `json:"website,omitempty"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// PublicView is the cross-tenant projection of a team profile. It carries
// strictly less than the owner's view: no contact email and no credential.
type PublicView struct {
	ID          string      `json:"id"`
	Name        string      `json:"team_name"`
	Number      string      `json:"team_number,omitempty"`
	Description string      `json:"description,omitempty"`
	LogoURL     string      `json:"logo_url,omitempty"`
	Social      SocialLinks `json:"social_media"`
	Location    string      `json:"location,omitempty"`
	FoundedYear int         `json:"founded_year,omitempty"`
	Website     string      `json:"website,omitempty"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Public returns the cross-tenant projection of the team.
func (t *Team) Public() PublicView {
	return PublicView{
		ID:          t.ID,
		Name:        t.Name,
		Number:      t.Number,
		Description: t.Description,
		LogoURL:     t.LogoURL,
		Social:      t.Social,
		Location:    t.Location,
		FoundedYear: t.FoundedYear,
		Website:     t.Website,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
	}
}

// Info is the narrow projection attached to public materials and course
// listings: name, logo and social links only.
type Info struct {
	Name    string      `json:"team_name"`
	LogoURL string      `json:"logo_url,omitempty"`
	Social  SocialLinks `json:"social_media"`
}

// Info returns the narrow projection of the team.
func (t *Team) Info() Info {
	return Info{
		Name:    t.Name,
		LogoURL: t.LogoURL,
		Social:  t.Social,
	}
}

// CreateTeamInput holds the fields required to register a new team. The
// password is hashed by the store before it is written.
type CreateTeamInput struct {
	Name         string
	Number       string
	ContactEmail string
	Password     string
	Description  string
	Location     string
	FoundedYear  int
	Website      string
}

// UpdateTeamInput holds optional fields for a partial profile update. Only
// non-nil fields are applied; absent fields preserve their prior value.
type UpdateTeamInput struct {
	Name        *string      `json:"team_name"`
	Number      *string      `json:"team_number"`
	Description *string      `json:"description"`
	LogoURL     *string      `json:"logo_data"`
	Social      *SocialLinks `json:"social_media"`
	Location    *string      `json:"location"`
	FoundedYear *int         `json:"founded_year"`
	Website     *string      `json:"website"`
}
