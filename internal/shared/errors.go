package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness violation.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidCredentials indicates login failure. It deliberately does not
	// distinguish an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedToken occurs when a bearer token fails structural parsing.
	ErrMalformedToken = errors.New("malformed token")
	// ErrBadSignature occurs when a token signature does not verify.
	ErrBadSignature = errors.New("bad token signature")
	// ErrExpiredToken occurs when a token is presented at or after its expiry.
	ErrExpiredToken = errors.New("expired token")
	// ErrUnknownSubject occurs when token issuance finds no credential record.
	ErrUnknownSubject = errors.New("unknown subject")
	// ErrTooManyAttempts occurs when the login limiter trips.
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// IsTokenFault reports whether err is one of the token validation failures.
// All of them surface to clients as unauthorized.
func IsTokenFault(err error) bool {
	return errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrExpiredToken)
}
