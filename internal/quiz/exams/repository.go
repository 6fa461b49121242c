package exams

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elias0099/examenes-api/internal/shared"
)

// ListFilters narrows exam listings.
type ListFilters struct {
	CategoriaID int64
	ActiveOnly  bool
}

// Repository defines data access methods for exams.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Examen, error)
	Get(ctx context.Context, id int64) (Examen, error)
	Create(ctx context.Context, e Examen) (Examen, error)
	Update(ctx context.Context, e Examen) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectExamen = `
	SELECT e.id, e.titulo, e.descripcion, e.puntos_maximos, e.numero_de_preguntas, e.activo,
	       c.id, c.titulo, c.descripcion
	FROM examenes e
	JOIN categorias c ON c.id = e.categoria_id`

func scanExamen(row pgx.Row) (Examen, error) {
	var e Examen
	err := row.Scan(
		&e.ExamenID, &e.Titulo, &e.Descripcion, &e.PuntosMaximos, &e.NumeroDePreguntas, &e.Activo,
		&e.Categoria.CategoriaID, &e.Categoria.Titulo, &e.Categoria.Descripcion,
	)
	return e, err
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Examen, error) {
	query := selectExamen + ` WHERE 1=1`
	args := []any{}

	if filters.CategoriaID > 0 {
		query += ` AND e.categoria_id = $1`
		args = append(args, filters.CategoriaID)
	}
	if filters.ActiveOnly {
		query += ` AND e.activo = TRUE`
	}
	query += ` ORDER BY e.id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Examen
	for rows.Next() {
		e, err := scanExamen(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Examen, error) {
	e, err := scanExamen(r.pool.QueryRow(ctx, selectExamen+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Examen{}, shared.ErrNotFound
		}
		return Examen{}, err
	}
	return e, nil
}

func (r *repository) Create(ctx context.Context, e Examen) (Examen, error) {
	const query = `
		INSERT INTO examenes (titulo, descripcion, puntos_maximos, numero_de_preguntas, activo, categoria_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		e.Titulo, e.Descripcion, e.PuntosMaximos, e.NumeroDePreguntas, e.Activo, e.Categoria.CategoriaID,
	).Scan(&e.ExamenID)
	if err != nil {
		return Examen{}, err
	}
	return r.Get(ctx, e.ExamenID)
}

func (r *repository) Update(ctx context.Context, e Examen) error {
	const query = `
		UPDATE examenes
		SET titulo = $1, descripcion = $2, puntos_maximos = $3, numero_de_preguntas = $4, activo = $5, categoria_id = $6
		WHERE id = $7`
	tag, err := r.pool.Exec(ctx, query,
		e.Titulo, e.Descripcion, e.PuntosMaximos, e.NumeroDePreguntas, e.Activo, e.Categoria.CategoriaID, e.ExamenID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM examenes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
