package services

import (
	"context"
	"fmt"

	"github.com/keremaydin/acadport/internal/app/models/dto"
	"github.com/keremaydin/acadport/internal/app/repositories"
)

// RegistryService exposes the course and department code registries for the
// selection dropdowns. Registry rows are administrative reference data; there
// is nothing to invalidate beyond committed registry state.
type RegistryService struct {
	courseRepo     *repositories.CourseCodeRepository
	departmentRepo *repositories.DepartmentCodeRepository
}

// NewRegistryService creates a new registry service instance
func NewRegistryService(courseRepo *repositories.CourseCodeRepository, departmentRepo *repositories.DepartmentCodeRepository) *RegistryService {
	return &RegistryService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
	}
}

// ListCourses returns all course options ordered by name.
func (s *RegistryService) ListCourses(ctx context.Context) ([]*dto.CourseOption, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	options := make([]*dto.CourseOption, 0, len(courses))
	for _, course := range courses {
		options = append(options, &dto.CourseOption{
			ID:   course.ID,
			Code: course.Code,
			Name: course.Name,
		})
	}

	return options, nil
}

// ListDepartments returns all department options ordered by name.
func (s *RegistryService) ListDepartments(ctx context.Context) ([]*dto.DepartmentOption, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}

	options := make([]*dto.DepartmentOption, 0, len(departments))
	for _, department := range departments {
		options = append(options, &dto.DepartmentOption{
			ID:   department.ID,
			Code: department.Code,
			Name: department.Name,
		})
	}

	return options, nil
}
