package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name         string     `json:"name" db:"name" example:"John Doe"`                        // User's display name
	Email        string     `json:"email" db:"email" example:"user@school.edu"`               // User's email address
	Password     string     `json:"-" db:"password"`                                          // User's hashed password (excluded from JSON)
	UserType     UserType   `json:"userType" db:"user_type" example:"student"`                // Portal role
	RollNumber   string     `json:"rollNumber" db:"roll_number" example:"20250700001"`        // Issued roll number, immutable once set
	CourseID     *int64     `json:"courseId,omitempty" db:"course_id"`                        // Course reference (students only)
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id"`                // Department reference (staff only)
	Phone        *string    `json:"phone,omitempty" db:"phone"`                               // Contact phone (nullable)
	Address      *string    `json:"address,omitempty" db:"address"`                           // Postal address (nullable)
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`                 // Date of birth (nullable)
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`                   // Whether the user account is active
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`                 // Timestamp of the last login (nullable)

	// Relations (populated when needed)
	Course     *CourseCode     `json:"course,omitempty"`
	Department *DepartmentCode `json:"department,omitempty"`
}
