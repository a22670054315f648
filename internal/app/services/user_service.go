package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/app/models/dto"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
	"github.com/keremaydin/acadport/internal/pkg/auth"
	"github.com/keremaydin/acadport/internal/pkg/dberrors"
)

// RollNumberAllocator issues roll numbers for new accounts.
type RollNumberAllocator interface {
	Allocate(ctx context.Context, userType models.UserType, courseID, departmentID *int64) (string, error)
}

// UserStore is the persistence surface the provisioning flow needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, userType models.UserType, offset uint64, limit int) ([]*models.User, error)
	CountUsers(ctx context.Context, userType models.UserType) (int64, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// UserService handles admin user provisioning and management.
type UserService struct {
	users     UserStore
	allocator RollNumberAllocator
	logger    zerolog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore, allocator RollNumberAllocator, logger zerolog.Logger) *UserService {
	return &UserService{
		users:     users,
		allocator: allocator,
		logger:    logger,
	}
}

// CreateUser provisions a new account: allocates a roll number, generates a
// temporary password and persists the user row. The roll number is issued
// before the insert, so a failed allocation never produces a user row.
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreatedUserResponse, error) {
	userType := models.UserType(req.UserType)
	if !userType.Valid() {
		return nil, apperrors.ErrInvalidUserType
	}

	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewBadRequestError("dateOfBirth must be an ISO date (YYYY-MM-DD)")
		}
		dateOfBirth = &parsed
	}

	rollNumber, err := s.allocateWithRetry(ctx, userType, req.CourseID, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	tempPassword, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, fmt.Errorf("error generating temporary password: %w", err)
	}

	hashed, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     hashed,
		UserType:     userType,
		RollNumber:   rollNumber,
		CourseID:     req.CourseID,
		DepartmentID: req.DepartmentID,
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dateOfBirth,
		IsActive:     true,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("userID", id).
		Str("userType", string(userType)).
		Str("rollNumber", rollNumber).
		Msg("User provisioned")

	return &dto.CreatedUserResponse{
		ID:                id,
		Name:              req.Name,
		Email:             req.Email,
		UserType:          req.UserType,
		RollNumber:        rollNumber,
		TemporaryPassword: tempPassword,
	}, nil
}

// allocateWithRetry calls the allocator, retrying once when the failure is a
// transient transaction abort (serialization failure, deadlock, lock
// timeout). The allocator itself never retries.
func (s *UserService) allocateWithRetry(ctx context.Context, userType models.UserType, courseID, departmentID *int64) (string, error) {
	rollNumber, err := s.allocator.Allocate(ctx, userType, courseID, departmentID)
	if err == nil {
		return rollNumber, nil
	}

	if errors.Is(err, apperrors.ErrAllocationFailed) && dberrors.IsRetryable(err) {
		s.logger.Warn().Err(err).Msg("Allocation hit transient failure, retrying once")
		return s.allocator.Allocate(ctx, userType, courseID, departmentID)
	}

	return "", err
}

// GetUser retrieves a single user account.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid user ID")
	}
	return s.users.GetUserByID(ctx, id)
}

// ListUsers retrieves a page of users with the total count. An empty userType
// means no filter.
func (s *UserService) ListUsers(ctx context.Context, userType string, offset uint64, limit int) ([]*dto.UserSummary, int64, error) {
	filter := models.UserType(userType)
	if userType != "" && userType != "all" && !filter.Valid() {
		return nil, 0, apperrors.ErrInvalidUserType
	}
	if userType == "all" {
		filter = ""
	}

	users, err := s.users.ListUsers(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}

	total, err := s.users.CountUsers(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	summaries := make([]*dto.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, &dto.UserSummary{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			UserType:   string(user.UserType),
			RollNumber: user.RollNumber,
			IsActive:   user.IsActive,
			CreatedAt:  user.CreatedAt,
		})
	}

	return summaries, total, nil
}

// UpdateUser applies the admin-editable fields to an existing account.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes an account. Issued roll numbers are never reused: the
// counter row keeps its value regardless of deletions.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid user ID")
	}
	return s.users.DeleteUser(ctx, id)
}
