package exams

import (
	"context"
	"strings"

	"github.com/Elias0099/examenes-api/internal/platform/httpx"
	"github.com/Elias0099/examenes-api/internal/shared"
)

// Service handles exam business logic.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Examen, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Examen, error) {
	if id <= 0 {
		return Examen{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, e Examen) (Examen, error) {
	if err := validate(e); err != nil {
		return Examen{}, err
	}
	return s.repo.Create(ctx, e)
}

func (s *Service) Update(ctx context.Context, e Examen) (Examen, error) {
	if e.ExamenID <= 0 {
		return Examen{}, shared.ErrNotFound
	}
	if err := validate(e); err != nil {
		return Examen{}, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return Examen{}, err
	}
	return s.repo.Get(ctx, e.ExamenID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validate(e Examen) error {
	if strings.TrimSpace(e.Titulo) == "" {
		return httpx.ErrValidation
	}
	if e.Categoria.CategoriaID <= 0 {
		return httpx.ErrValidation
	}
	return nil
}
