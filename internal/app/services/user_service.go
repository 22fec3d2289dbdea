package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
	"github.com/ljcourses/backend/internal/pkg/auth"
	"github.com/ljcourses/backend/internal/pkg/validation"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	GetStats(ctx context.Context, userID uuid.UUID) (dto.ProfileStatsResponse, error)
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo       *repositories.UserRepository
	enrollmentRepo *repositories.EnrollmentRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo *repositories.UserRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
) UserService {
	return &userServiceImpl{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// GetProfile returns the user's profile
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates the user's editable profile fields
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	if !validation.IsValidName(fullName) {
		return nil, fmt.Errorf("%w: full name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}

	user.FullName = fullName
	user.Bio = req.Bio
	user.Major = req.Major
	user.ProfileImage = req.ProfileImage

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if !validation.IsValidPassword(newPassword) {
		return apperrors.ErrInvalidPassword
	}

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// GetStats summarizes the user's enrollments for the profile page
func (s *userServiceImpl) GetStats(ctx context.Context, userID uuid.UUID) (dto.ProfileStatsResponse, error) {
	stats, err := s.enrollmentRepo.Stats(ctx, userID)
	if err != nil {
		return dto.ProfileStatsResponse{}, err
	}

	return dto.ProfileStatsResponse{
		EnrolledCourses:  stats.Enrolled,
		CompletedCourses: stats.Completed,
		RemainingCourses: stats.Enrolled - stats.Completed,
	}, nil
}
