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

// CourseCodeRepository handles database operations for the course code registry
type CourseCodeRepository struct {
	db *pgxpool.Pool
}

// NewCourseCodeRepository creates a new course code repository
func NewCourseCodeRepository(db *pgxpool.Pool) *CourseCodeRepository {
	return &CourseCodeRepository{
		db: db,
	}
}

// GetByID retrieves a course code row by ID
func (r *CourseCodeRepository) GetByID(ctx context.Context, id int64) (*models.CourseCode, error) {
	query := `
		SELECT id, course_code, course_name, course_number
		FROM course_codes
		WHERE id = $1
	`

	var course models.CourseCode
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Number,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course code: %w", err)
	}

	return &course, nil
}

// ResolveNumber returns the numeric code embedded in student roll numbers.
func (r *CourseCodeRepository) ResolveNumber(ctx context.Context, id int64) (string, error) {
	var number string
	err := r.db.QueryRow(ctx, `
		SELECT course_number FROM course_codes WHERE id = $1`,
		id).Scan(&number)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrCourseNotFound
		}
		return "", fmt.Errorf("error resolving course number: %w", err)
	}

	return number, nil
}

// GetAll retrieves all course codes ordered by name, for dropdown population.
func (r *CourseCodeRepository) GetAll(ctx context.Context) ([]*models.CourseCode, error) {
	query := `
		SELECT id, course_code, course_name, course_number
		FROM course_codes
		ORDER BY course_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.CourseCode
	for rows.Next() {
		var course models.CourseCode
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Number,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Create inserts a new course code row. Used by seeding only; the allocator
// never mutates the registry.
func (r *CourseCodeRepository) Create(ctx context.Context, course *models.CourseCode) error {
	query := `
		INSERT INTO course_codes (course_code, course_name, course_number)
		VALUES ($1, $2, $3)
		ON CONFLICT (course_code) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, course.Code, course.Name, course.Number).Scan(&course.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating course code: %w", err)
	}

	return nil
}

// ExistsByCode checks if a course code exists by its display code
func (r *CourseCodeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_codes WHERE course_code = $1)`,
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course code existence: %w", err)
	}

	return exists, nil
}
