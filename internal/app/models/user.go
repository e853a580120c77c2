package models

// Role is the authorization level the upstream API assigns to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User mirrors the subset of the upstream user record the portal needs for
// display and authorization.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Session is the authenticated caller: the bearer token plus the user it was
// issued for.
type Session struct {
	Token string
	User  User
}

// AuthResponse is the upstream payload for a successful login or registration.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
