package questions

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/Elias0099/examenes-api/internal/platform/httpx"
	"github.com/Elias0099/examenes-api/internal/shared"
)

// Service handles question business logic.
type Service struct {
	repo    Repository
	shuffle func(n int, swap func(i, j int))
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, shuffle: rand.Shuffle}
}

// ListByExamen returns an exam's questions in randomized order, the order
// candidates see them in.
func (s *Service) ListByExamen(ctx context.Context, examenID int64) ([]Pregunta, error) {
	if examenID <= 0 {
		return nil, shared.ErrNotFound
	}
	result, err := s.repo.ListByExamen(ctx, examenID)
	if err != nil {
		return nil, err
	}
	s.shuffle(len(result), func(i, j int) {
		result[i], result[j] = result[j], result[i]
	})
	return result, nil
}

// ListAllByExamen returns an exam's questions in stable order, for the
// privileged management view.
func (s *Service) ListAllByExamen(ctx context.Context, examenID int64) ([]Pregunta, error) {
	if examenID <= 0 {
		return nil, shared.ErrNotFound
	}
	return s.repo.ListByExamen(ctx, examenID)
}

func (s *Service) Get(ctx context.Context, id int64) (Pregunta, error) {
	if id <= 0 {
		return Pregunta{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, q Pregunta) (Pregunta, error) {
	if err := validate(q); err != nil {
		return Pregunta{}, err
	}
	return s.repo.Create(ctx, q)
}

func (s *Service) Update(ctx context.Context, q Pregunta) (Pregunta, error) {
	if q.PreguntaID <= 0 {
		return Pregunta{}, shared.ErrNotFound
	}
	if err := validate(q); err != nil {
		return Pregunta{}, err
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return Pregunta{}, err
	}
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Submission is one answered question in an exam attempt.
type Submission struct {
	PreguntaID    int64  `json:"preguntaId"`
	RespuestaDada string `json:"respuestaDada"`
}

// EvaluationResult reports the grade of an exam attempt. Per-question
// correct answers stay server-side.
type EvaluationResult struct {
	PuntosMaximos  float64 `json:"puntosMaximos"`
	Correctas      int     `json:"correctas"`
	Intentadas     int     `json:"intentadas"`
	PuntosLogrados float64 `json:"puntosLogrados"`
}

// Evaluate grades submitted answers against the stored correct answers.
// Each question is worth an equal share of 100 points.
func (s *Service) Evaluate(ctx context.Context, examenID int64, submissions []Submission) (EvaluationResult, error) {
	stored, err := s.ListAllByExamen(ctx, examenID)
	if err != nil {
		return EvaluationResult{}, err
	}
	if len(stored) == 0 {
		return EvaluationResult{}, shared.ErrNotFound
	}

	answers := make(map[int64]string, len(stored))
	for _, q := range stored {
		answers[q.PreguntaID] = q.Respuesta
	}

	maxPoints := examMaxPoints(ctx, s.repo, examenID)

	result := EvaluationResult{PuntosMaximos: maxPoints}
	for _, sub := range submissions {
		expected, ok := answers[sub.PreguntaID]
		if !ok {
			continue
		}
		// Each question grades at most once; repeats of the same ID are ignored.
		delete(answers, sub.PreguntaID)
		if sub.RespuestaDada != "" {
			result.Intentadas++
		}
		if strings.TrimSpace(sub.RespuestaDada) == strings.TrimSpace(expected) {
			result.Correctas++
		}
	}
	result.PuntosLogrados = float64(result.Correctas) * (maxPoints / float64(len(stored)))
	return result, nil
}

// examMaxPoints resolves the exam's declared maximum. Exams store it as free
// text; anything unparseable falls back to the 100-point scale.
func examMaxPoints(ctx context.Context, repo Repository, examenID int64) float64 {
	raw, err := repo.ExamenPuntosMaximos(ctx, examenID)
	if err != nil {
		return 100
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || max <= 0 {
		return 100
	}
	return max
}

func validate(q Pregunta) error {
	if strings.TrimSpace(q.Contenido) == "" {
		return httpx.ErrValidation
	}
	if q.ExamenID <= 0 {
		return httpx.ErrValidation
	}
	if strings.TrimSpace(q.Respuesta) == "" {
		return httpx.ErrValidation
	}
	return nil
}
