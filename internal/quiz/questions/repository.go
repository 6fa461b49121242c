package questions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Elias0099/examenes-api/internal/shared"
)

// Repository defines data access methods for questions.
type Repository interface {
	ListByExamen(ctx context.Context, examenID int64) ([]Pregunta, error)
	ExamenPuntosMaximos(ctx context.Context, examenID int64) (string, error)
	Get(ctx context.Context, id int64) (Pregunta, error)
	Create(ctx context.Context, q Pregunta) (Pregunta, error)
	Update(ctx context.Context, q Pregunta) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectPregunta = `
	SELECT id, contenido, imagen, opcion1, opcion2, opcion3, opcion4, respuesta, respuesta_dada, examen_id
	FROM preguntas`

func scanPregunta(row pgx.Row) (Pregunta, error) {
	var q Pregunta
	err := row.Scan(
		&q.PreguntaID, &q.Contenido, &q.Imagen,
		&q.Opcion1, &q.Opcion2, &q.Opcion3, &q.Opcion4,
		&q.Respuesta, &q.RespuestaDada, &q.ExamenID,
	)
	return q, err
}

func (r *repository) ListByExamen(ctx context.Context, examenID int64) ([]Pregunta, error) {
	rows, err := r.pool.Query(ctx, selectPregunta+` WHERE examen_id = $1 ORDER BY id ASC`, examenID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Pregunta
	for rows.Next() {
		q, err := scanPregunta(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

// ExamenPuntosMaximos returns the exam's declared maximum score, stored as
// free text on the exam row.
func (r *repository) ExamenPuntosMaximos(ctx context.Context, examenID int64) (string, error) {
	var puntos string
	err := r.pool.QueryRow(ctx, `SELECT puntos_maximos FROM examenes WHERE id = $1`, examenID).Scan(&puntos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return puntos, nil
}

func (r *repository) Get(ctx context.Context, id int64) (Pregunta, error) {
	q, err := scanPregunta(r.pool.QueryRow(ctx, selectPregunta+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Pregunta{}, shared.ErrNotFound
		}
		return Pregunta{}, err
	}
	return q, nil
}

func (r *repository) Create(ctx context.Context, q Pregunta) (Pregunta, error) {
	const query = `
		INSERT INTO preguntas (contenido, imagen, opcion1, opcion2, opcion3, opcion4, respuesta, respuesta_dada, examen_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		q.Contenido, q.Imagen, q.Opcion1, q.Opcion2, q.Opcion3, q.Opcion4,
		q.Respuesta, q.RespuestaDada, q.ExamenID,
	).Scan(&q.PreguntaID)
	if err != nil {
		return Pregunta{}, err
	}
	return q, nil
}

func (r *repository) Update(ctx context.Context, q Pregunta) error {
	const query = `
		UPDATE preguntas
		SET contenido = $1, imagen = $2, opcion1 = $3, opcion2 = $4, opcion3 = $5, opcion4 = $6,
		    respuesta = $7, respuesta_dada = $8, examen_id = $9
		WHERE id = $10`
	tag, err := r.pool.Exec(ctx, query,
		q.Contenido, q.Imagen, q.Opcion1, q.Opcion2, q.Opcion3, q.Opcion4,
		q.Respuesta, q.RespuestaDada, q.ExamenID, q.PreguntaID,
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
	tag, err := r.pool.Exec(ctx, `DELETE FROM preguntas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
