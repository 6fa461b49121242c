package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elias0099/examenes-api/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Credential, error)
	RecordLogin(ctx context.Context, id, username, ip, ua string, at time.Time) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUsername fetches a credential record including its role assignments.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	const query = `
		SELECT id, username, password_hash, enabled
		FROM usuarios
		WHERE username = $1`

	cred := &Credential{}
	err := r.pool.QueryRow(ctx, query, username).
		Scan(&cred.ID, &cred.Username, &cred.PasswordHash, &cred.Enabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	const rolesQuery = `
		SELECT r.nombre
		FROM roles r
		JOIN usuario_roles ur ON ur.role_id = r.id
		WHERE ur.usuario_id = $1
		ORDER BY r.nombre`

	rows, err := r.pool.Query(ctx, rolesQuery, cred.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		cred.Roles = append(cred.Roles, role)
	}
	return cred, rows.Err()
}

// RecordLogin persists a login audit row. Failures here must not block the
// login itself; callers log and continue.
func (r *PGRepository) RecordLogin(ctx context.Context, id, username, ip, ua string, at time.Time) error {
	const query = `
		INSERT INTO login_audit (id, username, ip, user_agent, logged_in_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, id, username, ip, ua, at.UTC())
	return err
}

var _ Repository = (*PGRepository)(nil)
