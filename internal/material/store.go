package material

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atolyedev/atolye/internal/crypto"
	"github.com/atolyedev/atolye/internal/team"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no material matches (id, owning team). A
// material that exists but belongs to another team yields the same error,
// so callers cannot discover other teams' private resources.
var ErrNotFound = errors.New("material not found")

// Store provides database operations for materials. When a cipher is
// configured, file payloads are encrypted at rest; a nil cipher stores them
// as-is.
type Store struct {
	pool   *pgxpool.Pool
	cipher *crypto.Cipher
}

// NewStore creates a new material store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool, cipher *crypto.Cipher) *Store {
	return &Store{pool: pool, cipher: cipher}
}

const materialColumns = `id, team_id, title, description, material_type, file_data,
	file_name, file_size, mime_type, is_public, tags, created_at, updated_at`

func (s *Store) scanMaterial(scan func(dest ...any) error) (*Material, error) {
	m := &Material{}
	var tagsJSON []byte
	var stored string
	err := scan(&m.ID, &m.TeamID, &m.Title, &m.Description, &m.Type, &stored,
		&m.FileName, &m.FileSize, &m.MimeType, &m.IsPublic, &tagsJSON,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.FileData, err = s.cipher.Decrypt(stored)
	if err != nil {
		return nil, fmt.Errorf("decrypting file data: %w", err)
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	return m, nil
}

// Create inserts a new material owned by in.TeamID.
func (s *Store) Create(ctx context.Context, in CreateMaterialInput) (*Material, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshaling tags: %w", err)
	}

	stored, err := s.cipher.Encrypt(in.FileData)
	if err != nil {
		return nil, fmt.Errorf("encrypting file data: %w", err)
	}

	m, err := s.scanMaterial(func(dest ...any) error {
		return s.pool.QueryRow(ctx,
			`INSERT INTO materials (id, team_id, title, description, material_type,
			   file_data, file_name, file_size, mime_type, is_public, tags)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			 RETURNING `+materialColumns,
			newID(), in.TeamID, in.Title, in.Description, in.Type,
			stored, in.FileName, in.FileSize, in.MimeType, in.IsPublic, tagsJSON,
		).Scan(dest...)
	})
	if err != nil {
		return nil, fmt.Errorf("creating material: %w", err)
	}
	return m, nil
}

// ListByTeam returns all materials owned by the given team, newest first.
func (s *Store) ListByTeam(ctx context.Context, teamID string) ([]*Material, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+materialColumns+` FROM materials
		 WHERE team_id = $1 ORDER BY created_at DESC, id DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*Material
	for rows.Next() {
		m, err := s.scanMaterial(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// ListPublic returns all public materials across teams, newest first, each
// enriched with the owning team's narrow projection.
func (s *Store) ListPublic(ctx context.Context) ([]*PublicMaterial, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.team_id, m.title, m.description, m.material_type, m.file_data,
		        m.file_name, m.file_size, m.mime_type, m.is_public, m.tags,
		        m.created_at, m.updated_at,
		        t.name, t.logo_url, t.social
		 FROM materials m
		 JOIN teams t ON t.id = m.team_id
		 WHERE m.is_public = true
		 ORDER BY m.created_at DESC, m.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing public materials: %w", err)
	}
	defer rows.Close()

	var materials []*PublicMaterial
	for rows.Next() {
		pm := &PublicMaterial{TeamInfo: &team.Info{}}
		var tagsJSON, socialJSON []byte
		var stored string
		err := rows.Scan(&pm.ID, &pm.TeamID, &pm.Title, &pm.Description, &pm.Type,
			&stored, &pm.FileName, &pm.FileSize, &pm.MimeType, &pm.IsPublic,
			&tagsJSON, &pm.CreatedAt, &pm.UpdatedAt,
			&pm.TeamInfo.Name, &pm.TeamInfo.LogoURL, &socialJSON)
		if err != nil {
			return nil, fmt.Errorf("scanning public material row: %w", err)
		}
		pm.FileData, err = s.cipher.Decrypt(stored)
		if err != nil {
			return nil, fmt.Errorf("decrypting file data: %w", err)
		}
		if len(tagsJSON) > 0 {
			if err := json.Unmarshal(tagsJSON, &pm.Tags); err != nil {
				return nil, fmt.Errorf("unmarshaling tags: %w", err)
			}
		}
		if pm.Tags == nil {
			pm.Tags = []string{}
		}
		if len(socialJSON) > 0 {
			if err := json.Unmarshal(socialJSON, &pm.TeamInfo.Social); err != nil {
				return nil, fmt.Errorf("unmarshaling social links: %w", err)
			}
		}
		materials = append(materials, pm)
	}
	return materials, rows.Err()
}

// Delete removes the material only when it is owned by teamID. A missing
// material and an ownership mismatch both return ErrNotFound.
func (s *Store) Delete(ctx context.Context, id, teamID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM materials WHERE id = $1 AND team_id = $2`, id, teamID)
	if err != nil {
		return fmt.Errorf("deleting material: %w", err)
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
