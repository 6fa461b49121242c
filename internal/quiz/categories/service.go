package categories

import (
	"context"
	"strings"

	"github.com/Elias0099/examenes-api/internal/platform/httpx"
	"github.com/Elias0099/examenes-api/internal/shared"
)

// Service handles category business logic.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Categoria, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Categoria, error) {
	if id <= 0 {
		return Categoria{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, c Categoria) (Categoria, error) {
	if err := validate(c); err != nil {
		return Categoria{}, err
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, c Categoria) (Categoria, error) {
	if c.CategoriaID <= 0 {
		return Categoria{}, shared.ErrNotFound
	}
	if err := validate(c); err != nil {
		return Categoria{}, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return Categoria{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func validate(c Categoria) error {
	if strings.TrimSpace(c.Titulo) == "" {
		return httpx.ErrValidation
	}
	return nil
}
