package models

const DefaultUserRole = "CLIENTE"

// AppUser is only ever sent to the API; the password is never kept after
// the request completes.
type AppUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
