package dto

import "time"

// CreateUserRequest is the admin provisioning payload. Exactly one org-unit
// reference is meaningful per user type: courseId for students, departmentId
// for staff.
type CreateUserRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=100" example:"Jane Roe"`
	Email        string  `json:"email" binding:"required,email" example:"jane@school.edu"`
	UserType     string  `json:"userType" binding:"required,oneof=student teacher faculty admin" example:"student"`
	CourseID     *int64  `json:"courseId,omitempty" example:"1"`
	DepartmentID *int64  `json:"departmentId,omitempty" example:"5"`
	Phone        *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Address      *string `json:"address,omitempty" binding:"omitempty,max=255"`
	DateOfBirth  *string `json:"dateOfBirth,omitempty" example:"2002-09-14"` // ISO date
}

// CreatedUserResponse returns the provisioned account together with the
// one-time temporary password.
type CreatedUserResponse struct {
	ID                int64  `json:"id" example:"17"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	UserType          string `json:"userType"`
	RollNumber        string `json:"rollNumber" example:"20250700001"`
	TemporaryPassword string `json:"temporaryPassword"`
}

// UpdateUserRequest carries the admin-editable account fields.
type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100"`
	IsActive *bool   `json:"isActive,omitempty"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Address  *string `json:"address,omitempty" binding:"omitempty,max=255"`
}

// UserSummary is the list/detail projection of a user account.
type UserSummary struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	UserType   string    `json:"userType"`
	RollNumber string    `json:"rollNumber"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
}
