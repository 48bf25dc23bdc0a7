package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario y asigna el ID generado.
// Username y email tienen índices únicos; colisión -> ErrEmailAlreadyExists.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_staff, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		user.Username, user.Email, user.PasswordHash, user.IsStaff, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, o nil si no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `SELECT id, username, email, password_hash, is_staff, created_at FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user")
}

// GetByEmail obtiene un usuario por email, o nil si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT id, username, email, password_hash, is_staff, created_at FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// CreateProfile persiste el perfil de permisos del usuario.
func (r *UserRepo) CreateProfile(profile *entity.UserProfile) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO user_profiles (user_id, can_generate_invoice, can_view_reports) VALUES ($1, $2, $3)`,
		profile.UserID, profile.CanGenerateInvoice, profile.CanViewReports,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user profile: %w", err)
	}
	return nil
}

// GetProfile devuelve el perfil del usuario, o nil si no existe.
func (r *UserRepo) GetProfile(userID int64) (*entity.UserProfile, error) {
	query := `SELECT user_id, can_generate_invoice, can_view_reports FROM user_profiles WHERE user_id = $1`
	var p entity.UserProfile
	err := r.q.QueryRow(context.Background(), query, userID).Scan(
		&p.UserID, &p.CanGenerateInvoice, &p.CanViewReports,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile actualiza los flags de permisos del usuario.
func (r *UserRepo) UpdateProfile(profile *entity.UserProfile) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE user_profiles SET can_generate_invoice = $2, can_view_reports = $3 WHERE user_id = $1`,
		profile.UserID, profile.CanGenerateInvoice, profile.CanViewReports,
	)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}
