package auth

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the domain entity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is returned by register and login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
