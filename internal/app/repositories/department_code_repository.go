package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
)

// DepartmentCodeRepository handles database operations for the department code registry
type DepartmentCodeRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentCodeRepository creates a new department code repository
func NewDepartmentCodeRepository(db *pgxpool.Pool) *DepartmentCodeRepository {
	return &DepartmentCodeRepository{
		db: db,
	}
}

// GetByID retrieves a department code row by ID
func (r *DepartmentCodeRepository) GetByID(ctx context.Context, id int64) (*models.DepartmentCode, error) {
	query := `
		SELECT id, department_code, department_name, department_number
		FROM department_codes
		WHERE id = $1
	`

	var department models.DepartmentCode
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Code,
		&department.Name,
		&department.Number,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department code: %w", err)
	}

	return &department, nil
}

// ResolveNumber returns the numeric code embedded in staff roll numbers.
func (r *DepartmentCodeRepository) ResolveNumber(ctx context.Context, id int64) (string, error) {
	var number string
	err := r.db.QueryRow(ctx, `
		SELECT department_number FROM department_codes WHERE id = $1`,
		id).Scan(&number)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrDepartmentNotFound
		}
		return "", fmt.Errorf("error resolving department number: %w", err)
	}

	return number, nil
}

// GetAll retrieves all department codes ordered by name, for dropdown population.
func (r *DepartmentCodeRepository) GetAll(ctx context.Context) ([]*models.DepartmentCode, error) {
	query := `
		SELECT id, department_code, department_name, department_number
		FROM department_codes
		ORDER BY department_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.DepartmentCode
	for rows.Next() {
		var department models.DepartmentCode
		if err := rows.Scan(
			&department.ID,
			&department.Code,
			&department.Name,
			&department.Number,
		); err != nil {
			return nil, err
		}
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// Create inserts a new department code row. Used by seeding only.
func (r *DepartmentCodeRepository) Create(ctx context.Context, department *models.DepartmentCode) error {
	query := `
		INSERT INTO department_codes (department_code, department_name, department_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (department_code) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, department.Code, department.Name, department.Number).Scan(&department.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating department code: %w", err)
	}

	return nil
}

// ExistsByCode checks if a department code exists by its display code
func (r *DepartmentCodeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM department_codes WHERE department_code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking department code existence: %w", err)
	}

	return exists, nil
}
