package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateUser creates a new user row carrying an already-issued roll number.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	// Check email availability
	exists, err := r.EmailExists(ctx, user.Email)
	if err != nil {
		return 0, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	var id int64
	err = r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, user_type, roll_number, course_id, department_id, phone, address, date_of_birth, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		user.Name, user.Email, user.Password, user.UserType, user.RollNumber,
		user.CourseID, user.DepartmentID, user.Phone, user.Address, user.DateOfBirth,
		user.IsActive).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, user_type, roll_number, course_id, department_id,
		       phone, address, date_of_birth, is_active, created_at, updated_at, last_login_at
		FROM users
		WHERE email = $1`,
		email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.UserType, &user.RollNumber,
		&user.CourseID, &user.DepartmentID, &user.Phone, &user.Address, &user.DateOfBirth,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, user_type, roll_number, course_id, department_id,
		       phone, address, date_of_birth, is_active, created_at, updated_at, last_login_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.UserType, &user.RollNumber,
		&user.CourseID, &user.DepartmentID, &user.Phone, &user.Address, &user.DateOfBirth,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// ListUsers retrieves a page of users, optionally filtered by user type,
// newest first.
func (r *UserRepository) ListUsers(ctx context.Context, userType models.UserType, offset uint64, limit int) ([]*models.User, error) {
	query := `
		SELECT id, name, email, user_type, roll_number, is_active, created_at
		FROM users
	`
	args := []interface{}{}
	if userType != "" {
		query += ` WHERE user_type = $1`
		args = append(args, userType)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.UserType,
			&user.RollNumber, &user.IsActive, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CountUsers returns the total number of users, optionally filtered by type.
func (r *UserRepository) CountUsers(ctx context.Context, userType models.UserType) (int64, error) {
	query := `SELECT COUNT(*) FROM users`
	args := []interface{}{}
	if userType != "" {
		query += ` WHERE user_type = $1`
		args = append(args, userType)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}

	return total, nil
}

// UpdateUser updates the admin-editable account fields. The roll number and
// user type are immutable once issued.
func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, is_active = $2, phone = $3, address = $4, updated_at = now()
		WHERE id = $5`,
		user.Name, user.IsActive, user.Phone, user.Address, user.ID)

	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfile updates the self-service profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, name string, phone, address *string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, phone = $2, address = $3, updated_at = now()
		WHERE id = $4`,
		name, phone, address, userID)

	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteUser deletes a user by ID
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	now := time.Now()
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login_at = $1
		WHERE id = $2`,
		now, userID)

	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}

	return nil
}
