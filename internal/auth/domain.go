package auth

import "time"

// Role names as stored in the role table and embedded in token claims.
const (
	RoleAdmin  = "ADMIN"
	RoleNormal = "NORMAL"
)

// Credential is the stored identity record the auth core reads. The password
// hash embeds its own salt and cost factor.
type Credential struct {
	ID           int64
	Username     string
	PasswordHash string
	Enabled      bool
	Roles        []string
}

// Principal is the authenticated identity derived from a validated token.
// It lives for a single request and is never persisted. Its role set is the
// claim set embedded at issuance time; roles revoked afterwards remain
// effective until the token expires.
type Principal struct {
	Username  string
	Roles     []string
	ExpiresAt time.Time
}

// HasRole reports whether the principal holds the named role.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal holds at least one of the roles.
func (p *Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal holds the privileged role.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
