package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/app/models/dto"
	"github.com/keremaydin/acadport/internal/app/repositories"
	"github.com/keremaydin/acadport/internal/pkg/apperrors"
	"github.com/keremaydin/acadport/internal/pkg/auth"
)

// AuthService handles signin and profile operations.
type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Signin verifies credentials and issues a session token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	// Best effort; a failed timestamp update must not fail the signin.
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login time")
	}

	s.logger.Info().Int64("userID", user.ID).Str("userType", string(user.UserType)).Msg("User signed in")

	return &dto.SigninResponse{
		Token:     token,
		ExpiresIn: expiresIn,
		User: &dto.UserSummary{
			ID:         user.ID,
			Name:       user.Name,
			Email:      user.Email,
			UserType:   string(user.UserType),
			RollNumber: user.RollNumber,
			IsActive:   user.IsActive,
			CreatedAt:  user.CreatedAt,
		},
	}, nil
}

// GetProfile returns the account of the authenticated user.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// UpdateProfile applies the self-service editable profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Phone, req.Address); err != nil {
		return nil, err
	}
	return s.userRepo.GetUserByID(ctx, userID)
}
