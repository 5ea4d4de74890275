package dto

import "time"

// RegisterRequest body de POST /api/auth/register.
type RegisterRequest struct {
	TenantID   string  `json:"tenant_id"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	BranchID   *string `json:"branch_id,omitempty"`
	IsDirector bool    `json:"is_director,omitempty"`
}

// LoginRequest body de POST /api/auth/login. O tenant escolhe qual papel do
// usuário assina o token.
type LoginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse representação pública do usuário.
type UserResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
