package team

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/atolyedev/atolye/internal/auth"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when no team matches the lookup.
	ErrNotFound = errors.New("team not found")

	// ErrConflict is returned when a team with the same name or email
	// already exists.
	ErrConflict = errors.New("team name or email already taken")
)

// Store provides database operations for teams.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new team store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const teamColumns = `id, name, number, contact_email, password_hash, description,
	logo_url, social, location, founded_year, website, is_active, created_at, updated_at`

// scanTeam scans a team row, handling the JSONB social column.
func scanTeam(scan func(dest ...any) error) (*Team, error) {
	t := &Team{}
	var socialJSON []byte
	err := scan(&t.ID, &t.Name, &t.Number, &t.ContactEmail, &t.PasswordHash,
		&t.Description, &t.LogoURL, &socialJSON, &t.Location, &t.FoundedYear,
		&t.Website, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(socialJSON) > 0 {
		if err := json.Unmarshal(socialJSON, &t.Social); err != nil {
			return nil, fmt.Errorf("unmarshaling social links: %w", err)
		}
	}
	return t, nil
}

// Create registers a new team with a bcrypt-hashed password. The name and
// email must both be unused; the pre-check and the UNIQUE constraints on the
// table together yield ErrConflict for duplicates, so two concurrent
// registrations cannot both succeed.
func (s *Store) Create(ctx context.Context, in CreateTeamInput) (*Team, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM teams WHERE name = $1 OR contact_email = $2)`,
		in.Name, in.ContactEmail,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking team uniqueness: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	socialJSON, err := json.Marshal(SocialLinks{})
	if err != nil {
		return nil, fmt.Errorf("marshaling social links: %w", err)
	}

	t, err := scanTeam(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`INSERT INTO teams (id, name, number, contact_email, password_hash,
			   description, logo_url, social, location, founded_year, website)
			 VALUES ($1, $2, $3, $4, $5, $6, '', $7, $8, $9, $10)
			 RETURNING `+teamColumns,
			newID(), in.Name, in.Number, in.ContactEmail, hash,
			in.Description, socialJSON, in.Location, in.FoundedYear, in.Website,
		).Scan(dest...)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("creating team: %w", err)
	}
	return t, nil
}

// GetByID retrieves a team by primary key.
func (s *Store) GetByID(ctx context.Context, id string) (*Team, error) {
	t, err := scanTeam(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`SELECT `+teamColumns+` FROM teams WHERE id = $1`, id,
		).Scan(dest...)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting team by id: %w", err)
	}
	return t, nil
}

// GetByEmail retrieves a team by contact email, used for login.
func (s *Store) GetByEmail(ctx context.Context, email string) (*Team, error) {
	t, err := scanTeam(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`SELECT `+teamColumns+` FROM teams WHERE contact_email = $1`, email,
		).Scan(dest...)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting team by email: %w", err)
	}
	return t, nil
}

// Update performs a partial update on the team with the given id. Only
// non-nil input fields are written; updated_at is always refreshed.
func (s *Store) Update(ctx context.Context, id string, in UpdateTeamInput) (*Team, error) {
	var setClauses []string
	var args []any
	argIdx := 1

	addClause := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if in.Name != nil {
		addClause("name", *in.Name)
	}
	if in.Number != nil {
		addClause("number", *in.Number)
	}
	if in.Description != nil {
		addClause("description", *in.Description)
	}
	if in.LogoURL != nil {
		addClause("logo_url", *in.LogoURL)
	}
	if in.Social != nil {
		socialJSON, err := json.Marshal(*in.Social)
		if err != nil {
			return nil, fmt.Errorf("marshaling social links: %w", err)
		}
		addClause("social", socialJSON)
	}
	if in.Location != nil {
		addClause("location", *in.Location)
	}
	if in.FoundedYear != nil {
		addClause("founded_year", *in.FoundedYear)
	}
	if in.Website != nil {
		addClause("website", *in.Website)
	}

	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE teams SET %s WHERE id = $%d RETURNING `+teamColumns,
		strings.Join(setClauses, ", "), argIdx,
	)

	t, err := scanTeam(func(dest ...any) error {
		return s.pool.QueryRow(ctx, query, args...).Scan(dest...)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("updating team: %w", err)
	}
	return t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// newID produces a 32-character hex id from 16 random bytes.
func newID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
