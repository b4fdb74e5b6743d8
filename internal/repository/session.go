package repository

import (
	"context"
	"errors"

	"github.com/helpbeacon/helpbeacon/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles session persistence. Raw tokens never
// reach this layer; callers pass SHA-256 hashes.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create persists a new session.
func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO sessions (id, tenant_id, user_name, role, token_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		s.ID, s.TenantID, s.UserName, s.Role, s.TokenHash,
	).Scan(&s.CreatedAt)
}

// GetByTokenHash looks up a session by its token hash. Revoked
// sessions are still returned; the caller decides whether they count.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var s domain.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, user_name, role, token_hash, created_at, revoked_at
		 FROM sessions WHERE token_hash = $1`,
		tokenHash,
	).Scan(&s.ID, &s.TenantID, &s.UserName, &s.Role, &s.TokenHash, &s.CreatedAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetByID fetches a session by its UUID.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var s domain.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, user_name, role, token_hash, created_at, revoked_at
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.TenantID, &s.UserName, &s.Role, &s.TokenHash, &s.CreatedAt, &s.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all sessions, newest first.
func (r *SessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, user_name, role, token_hash, created_at, revoked_at
		 FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.TenantID, &s.UserName, &s.Role, &s.TokenHash, &s.CreatedAt, &s.RevokedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// Revoke marks a session revoked. Idempotent: revoking twice keeps the
// original revocation time.
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE sessions SET revoked_at = COALESCE(revoked_at, NOW()) WHERE id = $1`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Drop removes the sessions table entirely. Uninstall only.
func (r *SessionRepository) Drop(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DROP TABLE IF EXISTS sessions`)
	return err
}
