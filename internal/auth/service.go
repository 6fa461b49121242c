package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/Elias0099/examenes-api/internal/shared"
)

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs the same bcrypt work as a wrong password. Hash of an
// unguessable random string.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service wraps authentication business rules: credential verification and
// token issuance.
type Service struct {
	logger  *slog.Logger
	repo    Repository
	codec   *TokenCodec
	limiter *LoginLimiter
	now     func() time.Time
}

// NewService constructs a new Service.
func NewService(logger *slog.Logger, repo Repository, codec *TokenCodec, limiter *LoginLimiter) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:  logger,
		repo:    repo,
		codec:   codec,
		limiter: limiter,
		now:     time.Now,
	}
}

// Login verifies the credential pair and mints a signed token on success.
// Every failure path returns shared.ErrInvalidCredentials so the response
// never reveals whether the username or the password was wrong.
func (s *Service) Login(ctx context.Context, username, password, ip, ua string) (string, error) {
	username = norm.NFC.String(username)

	if s.limiter.Blocked(ctx, username, ip) {
		return "", shared.ErrTooManyAttempts
	}

	cred, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// Burn the same hashing cost as a wrong password.
		VerifyPassword(password, dummyHash)
		s.limiter.RecordFailure(ctx, username, ip)
		if errors.Is(err, shared.ErrNotFound) {
			return "", shared.ErrInvalidCredentials
		}
		return "", err
	}

	if !VerifyPassword(password, cred.PasswordHash) || !cred.Enabled {
		s.limiter.RecordFailure(ctx, username, ip)
		return "", shared.ErrInvalidCredentials
	}

	s.limiter.Reset(ctx, username, ip)

	token, err := s.issue(cred)
	if err != nil {
		return "", err
	}

	if err := s.repo.RecordLogin(ctx, uuid.NewString(), cred.Username, ip, ua, s.now()); err != nil {
		s.logger.Warn("record login audit", slog.Any("error", err))
	}
	return token, nil
}

// Validate verifies a presented token and returns its principal.
func (s *Service) Validate(tokenString string) (*Principal, error) {
	return s.codec.Validate(tokenString, s.now())
}

// issue mints a token for a verified credential. Reaching this with a nil
// credential is an internal consistency fault, not a client error.
func (s *Service) issue(cred *Credential) (string, error) {
	if cred == nil || cred.Username == "" {
		return "", shared.ErrUnknownSubject
	}
	roles := cred.Roles
	if len(roles) == 0 {
		roles = []string{RoleNormal}
	}
	return s.codec.Issue(cred.Username, roles, s.now())
}
