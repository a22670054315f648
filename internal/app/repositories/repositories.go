package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	CourseCodeRepository     *CourseCodeRepository
	DepartmentCodeRepository *DepartmentCodeRepository
	RollCounterRepository    *RollCounterRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		CourseCodeRepository:     NewCourseCodeRepository(db),
		DepartmentCodeRepository: NewDepartmentCodeRepository(db),
		RollCounterRepository:    NewRollCounterRepository(db),
	}
}
