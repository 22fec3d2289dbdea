package models

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a published course authored by an instructor.
type Course struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	Title           string           `json:"title" db:"title"`
	Slug            string           `json:"slug" db:"slug"`
	Description     *string          `json:"description,omitempty" db:"description"` // Nullable
	Thumbnail       *string          `json:"thumbnail,omitempty" db:"thumbnail"`     // Thumbnail image URL
	DurationHours   *int             `json:"durationHours,omitempty" db:"duration_hours"`
	DifficultyLevel *DifficultyLevel `json:"difficultyLevel,omitempty" db:"difficulty_level"`
	InstructorID    *uuid.UUID       `json:"instructorId,omitempty" db:"instructor_id"`
	CategoryID      *uuid.UUID       `json:"categoryId,omitempty" db:"category_id"`
	IsPublished     bool             `json:"isPublished" db:"is_published"`
	IsFeatured      bool             `json:"isFeatured" db:"is_featured"`
	Rating          float64          `json:"rating" db:"rating"`
	TotalRatings    int              `json:"totalRatings" db:"total_ratings"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
	PublishedAt     *time.Time       `json:"publishedAt,omitempty" db:"published_at"`

	// Relations (populated when needed)
	Instructor *User     `json:"instructor,omitempty"`
	Category   *Category `json:"category,omitempty"`
	Lessons    []*Lesson `json:"lessons,omitempty"`
}
