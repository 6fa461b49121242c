package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elias0099/examenes-api/internal/shared"
)

type stubRepo struct {
	creds  map[string]*Credential
	logins []string
}

func (s *stubRepo) FindByUsername(ctx context.Context, username string) (*Credential, error) {
	cred, ok := s.creds[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cred, nil
}

func (s *stubRepo) RecordLogin(ctx context.Context, id, username, ip, ua string, at time.Time) error {
	s.logins = append(s.logins, username)
	return nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewLoginLimiter(client, 3, time.Minute)
	service := NewService(nil, repo, testCodec(), limiter)
	service.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return service
}

func seededRepo(t *testing.T) *stubRepo {
	t.Helper()
	hash, err := HashPassword("123")
	require.NoError(t, err)
	return &stubRepo{creds: map[string]*Credential{
		"elias": {ID: 1, Username: "elias", PasswordHash: hash, Enabled: true, Roles: []string{RoleNormal}},
	}}
}

func TestLoginIssuesTokenWithStoredRoles(t *testing.T) {
	repo := seededRepo(t)
	service := newTestService(t, repo)

	token, err := service.Login(context.Background(), "elias", "123", "10.0.0.1:4321", "go-test")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "elias", principal.Username)
	assert.Equal(t, []string{RoleNormal}, principal.Roles)

	assert.Equal(t, []string{"elias"}, repo.logins)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	service := newTestService(t, seededRepo(t))

	// Wrong password and unknown username return the identical sentinel so
	// the response cannot reveal which half was wrong.
	_, errWrongPassword := service.Login(context.Background(), "elias", "wrong", "10.0.0.1:1", "go-test")
	_, errUnknownUser := service.Login(context.Background(), "nobody", "123", "10.0.0.1:1", "go-test")

	assert.ErrorIs(t, errWrongPassword, shared.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, shared.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	repo := seededRepo(t)
	repo.creds["elias"].Enabled = false
	service := newTestService(t, repo)

	_, err := service.Login(context.Background(), "elias", "123", "10.0.0.1:1", "go-test")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginThrottlesAfterRepeatedFailures(t *testing.T) {
	service := newTestService(t, seededRepo(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Login(ctx, "elias", "wrong", "10.0.0.9:1", "go-test")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	}

	// The right password no longer helps until the window lapses.
	_, err := service.Login(ctx, "elias", "123", "10.0.0.9:1", "go-test")
	assert.ErrorIs(t, err, shared.ErrTooManyAttempts)

	// A different address is unaffected.
	_, err = service.Login(ctx, "elias", "123", "10.0.0.10:1", "go-test")
	assert.NoError(t, err)
}

func TestIssueWithoutCredentialFails(t *testing.T) {
	service := newTestService(t, seededRepo(t))
	_, err := service.issue(nil)
	assert.ErrorIs(t, err, shared.ErrUnknownSubject)
}
