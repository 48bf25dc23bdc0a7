package dto

import "time"

// RegisterRequest entrada para registrar un usuario (onboarding demo/dev).
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	IsStaff  bool   `json:"is_staff"`
}

// TokenAuthRequest entrada de POST /api/token-auth-email/.
type TokenAuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse salida con el bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse salida de un usuario (sin hash de password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// MeResponse capacidades del usuario autenticado, para que el frontend ajuste la UI.
type MeResponse struct {
	Username           string `json:"username"`
	IsStaff            bool   `json:"is_staff"`
	CanGenerateInvoice bool   `json:"can_generate_invoice"`
	CanViewReports     bool   `json:"can_view_reports"`
}
