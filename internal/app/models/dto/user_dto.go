package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	Role         string     `json:"role" example:"student"`
	ProfileImage *string    `json:"profileImage,omitempty"`
	Bio          *string    `json:"bio,omitempty"`
	Major        *string    `json:"major,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FullName     string  `json:"fullName" binding:"required,min=2,max=100"`
	Bio          *string `json:"bio,omitempty"`
	Major        *string `json:"major,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ProfileStatsResponse summarizes a student's learning activity
type ProfileStatsResponse struct {
	EnrolledCourses  int `json:"enrolledCourses"`
	CompletedCourses int `json:"completedCourses"`
	RemainingCourses int `json:"remainingCourses"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         string(user.Role),
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
		Major:        user.Major,
		CreatedAt:    user.CreatedAt,
		LastLogin:    user.LastLogin,
	}
}
