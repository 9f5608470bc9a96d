package message

import "time"

// Message is a contact message delivered to a team's inbox. The sender is
// an unvalidated identity, not a registered team; messages are created
// without authentication and only the recipient team may mark them read.
type Message struct {
	ID        string    `json:"id"`
	FromName  string    `json:"from_name"`
	FromEmail string    `json:"from_email"`
	ToTeamID  string    `json:"to_team_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"message"`
	CourseID  string    `json:"course_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMessageInput holds the fields for a new contact message.
type CreateMessageInput struct {
	FromName  string
	FromEmail string
	ToTeamID  string
	Subject   string
	Body      string
	CourseID  string
}
