package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elias0099/examenes-api/internal/shared"
)

// Repository defines data access methods for categories.
type Repository interface {
	List(ctx context.Context, filters shared.ListFilters) ([]Categoria, error)
	Get(ctx context.Context, id int64) (Categoria, error)
	Create(ctx context.Context, c Categoria) (Categoria, error)
	Update(ctx context.Context, c Categoria) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Categoria, error) {
	filters = filters.Normalize()
	query := `SELECT id, titulo, descripcion FROM categorias WHERE 1=1`
	args := []any{}

	if filters.Search != "" {
		query += ` AND titulo ILIKE $1`
		args = append(args, "%"+filters.Search+"%")
	}
	query += fmt.Sprintf(` ORDER BY titulo ASC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Categoria
	for rows.Next() {
		var c Categoria
		if err := rows.Scan(&c.CategoriaID, &c.Titulo, &c.Descripcion); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Categoria, error) {
	const query = `SELECT id, titulo, descripcion FROM categorias WHERE id = $1`
	var c Categoria
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.CategoriaID, &c.Titulo, &c.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Categoria{}, shared.ErrNotFound
		}
		return Categoria{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Categoria) (Categoria, error) {
	const query = `INSERT INTO categorias (titulo, descripcion) VALUES ($1, $2) RETURNING id`
	if err := r.pool.QueryRow(ctx, query, c.Titulo, c.Descripcion).Scan(&c.CategoriaID); err != nil {
		return Categoria{}, err
	}
	return c, nil
}

func (r *repository) Update(ctx context.Context, c Categoria) error {
	const query = `UPDATE categorias SET titulo = $1, descripcion = $2 WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, c.Titulo, c.Descripcion, c.CategoriaID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a category. Deleting an already-deleted ID returns
// ErrNotFound, never a server fault.
func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
