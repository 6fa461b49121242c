package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elias0099/examenes-api/internal/platform/db"
	"github.com/Elias0099/examenes-api/internal/shared"
)

// Repository defines data access methods for users.
type Repository interface {
	Create(ctx context.Context, user User, role string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts the user and its initial role assignment atomically.
func (r *repository) Create(ctx context.Context, user User, role string) (User, error) {
	now := time.Now().UTC()
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const insertUser = `
			INSERT INTO usuarios (username, password_hash, nombre, apellido, email, telefono, perfil, enabled, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`
		if err := tx.QueryRow(ctx, insertUser,
			user.Username, user.PasswordHash, user.Nombre, user.Apellido,
			user.Email, user.Telefono, user.Perfil, user.Enabled, now,
		).Scan(&user.ID); err != nil {
			return err
		}

		const assignRole = `
			INSERT INTO usuario_roles (usuario_id, role_id)
			SELECT $1, id FROM roles WHERE nombre = $2`
		tag, err := tx.Exec(ctx, assignRole, user.ID, role)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errors.New("users: default role missing")
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, shared.ErrDuplicate
		}
		return User{}, err
	}
	user.CreatedAt = now
	user.Roles = []string{role}
	return user, nil
}

// GetByUsername fetches a user with its role assignments.
func (r *repository) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
		SELECT id, username, password_hash, nombre, apellido, email, telefono, perfil, enabled, created_at
		FROM usuarios
		WHERE username = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Nombre, &u.Apellido,
		&u.Email, &u.Telefono, &u.Perfil, &u.Enabled, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}

	const rolesQuery = `
		SELECT r.nombre
		FROM roles r
		JOIN usuario_roles ur ON ur.role_id = r.id
		WHERE ur.usuario_id = $1
		ORDER BY r.nombre`
	rows, err := r.pool.Query(ctx, rolesQuery, u.ID)
	if err != nil {
		return User{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return User{}, err
		}
		u.Roles = append(u.Roles, role)
	}
	return u, rows.Err()
}

// GetByID fetches a user by its numeric identifier, without roles.
func (r *repository) GetByID(ctx context.Context, id int64) (User, error) {
	const query = `
		SELECT id, username, password_hash, nombre, apellido, email, telefono, perfil, enabled, created_at
		FROM usuarios
		WHERE id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Nombre, &u.Apellido,
		&u.Email, &u.Telefono, &u.Perfil, &u.Enabled, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Delete removes a user by ID. Role assignments cascade.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
