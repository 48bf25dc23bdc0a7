package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn dentro de una transacción con un repositorio de usuarios
// atado a esa tx. Usuario y perfil se crean juntos o no se crea ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(userRepo repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro y login por email.
type AuthUseCase struct {
	userRepo repository.UserRepository
	txRunner TxRunner
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste usuario y
// perfil en una sola transacción. El perfil nace con ambos permisos apagados;
// un staff los habilita después vía perfil. Devuelve ErrEmailAlreadyExists si
// el email o el username ya están tomados.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsStaff:      in.IsStaff,
		CreatedAt:    time.Now(),
	}
	err = uc.txRunner.Run(context.Background(), func(userRepo repository.UserRepository) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		return userRepo.CreateProfile(&entity.UserProfile{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// LoginByEmail verifica email/password y genera el JWT.
// Credenciales inválidas (email desconocido o password incorrecto) retornan
// ErrUnauthorized sin distinguir el caso, para no filtrar qué emails existen.
func (uc *AuthUseCase) LoginByEmail(in dto.TokenAuthRequest) (*dto.TokenResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.IsStaff, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
	}
}
