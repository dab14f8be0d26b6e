package domain

import "errors"

// Role is the authorization level carried by a user and mirrored into the session.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleRegular Role = "Regular"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// ParseRole maps a stored role name to a Role. Unknown names degrade to Regular
// so that a malformed record can never grant admin rights.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleRegular
}

func (r Role) String() string { return string(r) }

// User models an authenticated actor. It is read-only for the web application.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Rol          Role   `json:"rol"`
}

// IsAdmin reports whether the user may run mutating actions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Rol == RoleAdmin
}
