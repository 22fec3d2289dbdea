package models

import (
	"time"

	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           uuid.UUID  `json:"id" db:"id" example:"8f14e45f-ceea-4672-a1a5-3b5a2dcd9f11"` // Unique identifier for the user
	Email        string     `json:"email" db:"email" example:"student@ljcourses.io"`           // User's email address
	PasswordHash string     `json:"-" db:"password_hash"`                                      // Hashed password (excluded from JSON)
	FullName     string     `json:"fullName" db:"full_name" example:"Jane Doe"`                // User's display name
	Role         RoleType   `json:"role" db:"role" example:"student"`                          // User's role (student, instructor or admin)
	ProfileImage *string    `json:"profileImage,omitempty" db:"profile_image"`                 // Profile image URL (nullable)
	Bio          *string    `json:"bio,omitempty" db:"bio"`                                    // Short biography (nullable)
	Major        *string    `json:"major,omitempty" db:"major"`                                // Field of study (nullable)
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`                    // Whether the account is active
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login"` // Timestamp of the last login (nullable)
}
