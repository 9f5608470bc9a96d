package course

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no course matches the lookup.
var ErrNotFound = errors.New("course not found")

// Store provides database operations for courses.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new course store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const courseColumns = `id, title, description, category, duration, level, image_url,
	instructor_team_id, content, is_active, created_at, updated_at`

func scanCourse(scan func(dest ...any) error) (*Course, error) {
	c := &Course{}
	err := scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Duration,
		&c.Level, &c.ImageURL, &c.InstructorTeamID, &c.Content, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a new course.
func (s *Store) Create(ctx context.Context, in CreateCourseInput) (*Course, error) {
	c, err := scanCourse(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`INSERT INTO courses (id, title, description, category, duration, level,
			   image_url, instructor_team_id, content)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING `+courseColumns,
			newID(), in.Title, in.Description, in.Category, in.Duration,
			in.Level, in.ImageURL, in.InstructorTeamID, in.Content,
		).Scan(dest...)
	})
	if err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}
	return c, nil
}

// List returns all courses, newest first.
func (s *Store) List(ctx context.Context) ([]*Course, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		c, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course by primary key.
func (s *Store) GetByID(ctx context.Context, id string) (*Course, error) {
	c, err := scanCourse(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id,
		).Scan(dest...)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting course by id: %w", err)
	}
	return c, nil
}

// newID produces a 32-character hex id from 16 random bytes.
func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
