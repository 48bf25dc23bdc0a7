package entity

import "time"

// User representa un usuario del sistema.
// IsStaff otorga todos los permisos; el resto de capacidades viven en UserProfile.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	IsStaff      bool
	CreatedAt    time.Time
}

// UserProfile guarda permisos adicionales por usuario (relación uno a uno con User).
// Se crea explícitamente junto con el usuario — no hay hooks implícitos de ciclo de vida.
type UserProfile struct {
	UserID             int64
	CanGenerateInvoice bool
	CanViewReports     bool
}

// Caller identifica al usuario autenticado de la request actual.
// Nil significa request anónima (solo válida con el flag de facturación anónima).
type Caller struct {
	ID       int64
	Username string
	IsStaff  bool
}
