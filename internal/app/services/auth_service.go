package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
	"github.com/ljcourses/backend/internal/pkg/auth"
	"github.com/ljcourses/backend/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   *repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateRegistration validates registration input before touching the database
func (s *AuthService) validateRegistration(req *dto.RegisterRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.IsValidEmail(email) {
		return apperrors.ErrInvalidEmail
	}
	req.Email = email

	if !validation.IsValidPassword(req.Password) {
		return apperrors.ErrInvalidPassword
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if !validation.IsValidName(req.FullName) {
		return fmt.Errorf("%w: full name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}

	return nil
}

// Register creates a new student account
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FullName:     req.FullName,
		Role:         models.RoleStudent,
	}
	if req.Major != "" {
		major := req.Major
		user.Major = &major
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("userId", user.ID.String()).
		Str("email", user.Email).
		Msg("New user registered")

	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, dto.TokenResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Do not reveal whether the email exists.
			return nil, dto.TokenResponse{}, apperrors.ErrInvalidCredentials
		}
		return nil, dto.TokenResponse{}, err
	}

	if !user.IsActive {
		return nil, dto.TokenResponse{}, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, dto.TokenResponse{}, apperrors.ErrInvalidCredentials
	}

	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, dto.TokenResponse{}, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// A failed last-login update should not block the login itself.
		s.logger.Warn().Err(err).Str("userId", user.ID.String()).Msg("Failed to update last login")
	}
	user.LastLogin = &now

	token := dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
	}

	return user, token, nil
}
