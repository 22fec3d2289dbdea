package models

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress tracks per-lesson completion for one enrollment. Exactly one
// row exists per (enrollment, lesson) pair; rows are created lazily on first
// view. CompletedAt is monotonic: once set, later view events never clear it.
type LessonProgress struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	EnrollmentID uuid.UUID  `json:"enrollmentId" db:"enrollment_id"`
	LessonID     uuid.UUID  `json:"lessonId" db:"lesson_id"`
	IsCompleted  bool       `json:"isCompleted" db:"is_completed"`
	WatchTime    int        `json:"watchTime" db:"watch_time"` // Seconds watched
	StartedAt    time.Time  `json:"startedAt" db:"started_at"` // First access timestamp
	CompletedAt  *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	LastAccessed time.Time  `json:"lastAccessed" db:"last_accessed"`

	// Relation (populated when needed)
	Lesson *Lesson `json:"lesson,omitempty"`
}
