package message

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no message matches (id, recipient team).
// Messages addressed to other teams yield the same error.
var ErrNotFound = errors.New("message not found")

// Store provides database operations for contact messages.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new message store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const messageColumns = `id, from_name, from_email, to_team_id, subject, body,
	course_id, is_read, created_at`

func scanMessage(scan func(dest ...any) error) (*Message, error) {
	m := &Message{}
	err := scan(&m.ID, &m.FromName, &m.FromEmail, &m.ToTeamID, &m.Subject,
		&m.Body, &m.CourseID, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create records a new inbound message. Messages always start unread.
func (s *Store) Create(ctx context.Context, in CreateMessageInput) (*Message, error) {
	m, err := scanMessage(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`INSERT INTO messages (id, from_name, from_email, to_team_id, subject, body, course_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+messageColumns,
			newID(), in.FromName, in.FromEmail, in.ToTeamID, in.Subject, in.Body, in.CourseID,
		).Scan(dest...)
	})
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return m, nil
}

// ListByTeam returns the inbox of the given team, newest first.
func (s *Store) ListByTeam(ctx context.Context, teamID string) ([]*Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE to_team_id = $1 ORDER BY created_at DESC, id DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		m, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkRead sets the read flag on a message, but only when it is addressed
// to teamID. A missing message and a recipient mismatch both return
// ErrNotFound.
func (s *Store) MarkRead(ctx context.Context, id, teamID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE messages SET is_read = true WHERE id = $1 AND to_team_id = $2`,
		id, teamID)
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// newID produces a 32-character hex id from 16 random bytes.
func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
