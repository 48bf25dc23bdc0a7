package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios y sus perfiles.
type UserRepository interface {
	// Create persiste el usuario y asigna user.ID.
	// Retorna domain.ErrEmailAlreadyExists si email o username ya existen.
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// CreateProfile persiste el perfil; se invoca explícitamente junto con Create
	// (el registro de usuario crea ambos en la misma transacción).
	CreateProfile(profile *entity.UserProfile) error
	// GetProfile devuelve el perfil del usuario, o nil si no existe.
	GetProfile(userID int64) (*entity.UserProfile, error)
	UpdateProfile(profile *entity.UserProfile) error
}
