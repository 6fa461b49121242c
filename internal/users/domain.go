package users

import "time"

// User represents a user account. The password hash never serializes.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Email        string    `json:"email"`
	Telefono     string    `json:"telefono"`
	Perfil       string    `json:"perfil"`
	Enabled      bool      `json:"enabled"`
	Roles        []string  `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Authority mirrors the granted-role element of the wire format.
type Authority struct {
	Authority string `json:"authority"`
}

// View is the outbound representation of a user: profile fields plus the
// role list rendered as authorities.
type View struct {
	User
	Authorities []Authority `json:"authorities"`
}

// NewView builds the outbound representation for a user.
func NewView(u User) View {
	authorities := make([]Authority, 0, len(u.Roles))
	for _, role := range u.Roles {
		authorities = append(authorities, Authority{Authority: role})
	}
	return View{User: u, Authorities: authorities}
}
