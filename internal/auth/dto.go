package auth

import "github.com/kasmetics/storefront/internal/users"

// LoginRequest carries the credentials for both storefront and admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries the fields for a new storefront account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginResponse is returned by Login, AdminLogin, and Register.
type LoginResponse struct {
	AccessToken string         `json:"token"`
	User        *users.UserDTO `json:"user"`
}
