package models

import (
	"time"

	"github.com/google/uuid"
)

// Lesson represents a single lesson within a course. The Order field is
// unique per course and drives sequential "next lesson" navigation.
type Lesson struct {
	ID            uuid.UUID `json:"id" db:"id"`
	CourseID      uuid.UUID `json:"courseId" db:"course_id"`
	Title         string    `json:"title" db:"title"`
	Description   *string   `json:"description,omitempty" db:"description"`
	Content       *string   `json:"content,omitempty" db:"content"`          // Rich text lesson content
	VideoURL      *string   `json:"videoUrl,omitempty" db:"video_url"`       // Video resource URL
	VideoDuration *int      `json:"videoDuration,omitempty" db:"video_duration"` // Seconds
	ResourcesURL  *string   `json:"resourcesUrl,omitempty" db:"resources_url"`
	Order         int       `json:"order" db:"lesson_order"`
	IsFree        bool      `json:"isFree" db:"is_free"`
	IsPublished   bool      `json:"isPublished" db:"is_published"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
