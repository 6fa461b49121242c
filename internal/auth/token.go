package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Elias0099/examenes-api/internal/shared"
)

// Claims is the signed token payload: subject identity plus the role names
// granted at issuance time.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates signed bearer tokens. The key is set once
// at startup and never mutated, so a single codec is safe for concurrent use.
type TokenCodec struct {
	key []byte
	ttl time.Duration
}

// NewTokenCodec constructs a codec for the given signing key and token TTL.
func NewTokenCodec(key []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{key: key, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue mints a signed token for the subject with the given role claims.
// The signature covers the whole payload, so any mutation invalidates it.
func (c *TokenCodec) Issue(subject string, roles []string, now time.Time) (string, error) {
	claims := Claims{
		Roles: append([]string(nil), roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.key)
}

// Validate parses and verifies a token string, returning the principal it
// carries. It is a pure function of (token, now, key): no store lookup runs,
// which keeps the per-request hot path free of I/O.
func (c *TokenCodec) Validate(tokenString string, now time.Time) (*Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, shared.ErrBadSignature
			}
			return c.key, nil
		},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, mapTokenError(err)
	}
	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, shared.ErrMalformedToken
	}
	// A token is valid within [issued-at, expiry); the expiry instant itself
	// is already stale.
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, shared.ErrExpiredToken
	}
	return &Principal{
		Username:  claims.Subject,
		Roles:     append([]string(nil), claims.Roles...),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func mapTokenError(err error) error {
	// Checked in order: structure, then signature, then expiry. A token
	// that is both tampered and expired reports the signature fault.
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return shared.ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return shared.ErrBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return shared.ErrExpiredToken
	default:
		return shared.ErrMalformedToken
	}
}
