package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"servicapp/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error al generar el hash de la contraseña: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.Professions == nil {
		user.Professions = []string{}
	}
	if user.Specialties == nil {
		user.Specialties = []string{}
	}

	query := `
		INSERT INTO users (user_id, user_type, name, phone, email, password_hash, professions, specialties, company_name, refresh_token, refresh_token_expiry_time)
		VALUES (:user_id, :user_type, :name, :phone, :email, :password_hash, :professions, :specialties, :company_name, :refresh_token, :refresh_token_expiry_time)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("error al crear el usuario: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("usuario %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener el usuario: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("usuario con email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("error al obtener el usuario por email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("contraseña incorrecta")
	}

	return user, nil
}

// UpdateProfile persists the editable profile fields. The rating column
// is owned by the review closure transaction and never written here.
func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = :name,
		    phone = :phone,
		    professions = :professions,
		    specialties = :specialties,
		    company_name = :company_name,
		    profile_completed = :profile_completed
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("error al actualizar el perfil: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas actualizadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("usuario %s: %w", user.UserID, ErrNotFound)
	}

	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("error al actualizar el refresh token: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("refresh token inválido o vencido")
		}
		return nil, fmt.Errorf("error al obtener el usuario por refresh token: %w", err)
	}

	return &user, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, resetToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $1, reset_token_expiry_time = $2
		WHERE user_id = $3
	`

	_, err := r.db.ExecContext(ctx, query, resetToken, expiryTime, userID)
	if err != nil {
		return fmt.Errorf("error al guardar el token de recuperación: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, resetToken string) (*models.User, error) {
	var user models.User

	query := `
		SELECT * FROM users
		WHERE reset_token = $1
		AND reset_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &user, query, resetToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("token de recuperación inválido o vencido")
		}
		return nil, fmt.Errorf("error al obtener el usuario por token de recuperación: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error al generar el hash de la contraseña: %w", err)
	}

	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expiry_time = NULL
		WHERE user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, string(hashedPassword), userID)
	if err != nil {
		return fmt.Errorf("error al actualizar la contraseña: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar las filas actualizadas: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("usuario %s: %w", userID, ErrNotFound)
	}

	return nil
}

// GetCompletedWorkers returns every worker with a completed profile.
// The profession/specialty match itself happens in the service so the
// comparison rules live in one place.
func (r *userRepository) GetCompletedWorkers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT * FROM users
		WHERE user_type = 'worker' AND profile_completed = TRUE
	`

	var workers []models.User
	err := r.db.SelectContext(ctx, &workers, query)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los trabajadores: %w", err)
	}

	return workers, nil
}
