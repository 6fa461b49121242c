package users

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Elias0099/examenes-api/internal/auth"
	"github.com/Elias0099/examenes-api/internal/platform/httpx"
)

// DefaultPerfil is assigned when registration omits a profile image.
const DefaultPerfil = "default.png"

// Service handles user account business logic.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput carries the fields accepted at account creation.
type RegisterInput struct {
	Username string
	Password string
	Nombre   string
	Apellido string
	Email    string
	Telefono string
	Perfil   string
}

// Register creates a new account. Every new account gets the default
// non-privileged role; privileged roles are only granted out of band.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	username := norm.NFC.String(strings.TrimSpace(in.Username))
	if username == "" || in.Password == "" {
		return User{}, httpx.ErrValidation
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, err
	}

	perfil := strings.TrimSpace(in.Perfil)
	if perfil == "" {
		perfil = DefaultPerfil
	}

	user := User{
		Username:     username,
		PasswordHash: hash,
		Nombre:       strings.TrimSpace(in.Nombre),
		Apellido:     strings.TrimSpace(in.Apellido),
		Email:        strings.TrimSpace(in.Email),
		Telefono:     strings.TrimSpace(in.Telefono),
		Perfil:       perfil,
		Enabled:      true,
	}
	return s.repo.Create(ctx, user, auth.RoleNormal)
}

// GetByUsername returns the account for the given username.
func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, norm.NFC.String(username))
}

// Delete removes an account. Only the privileged role or the owning subject
// may delete it.
func (s *Service) Delete(ctx context.Context, id int64, principal *auth.Principal) error {
	if principal == nil {
		return httpx.ErrUnauthorized
	}
	if !principal.IsAdmin() {
		owner, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if owner.Username != principal.Username {
			return httpx.ErrForbidden
		}
	}
	return s.repo.Delete(ctx, id)
}
