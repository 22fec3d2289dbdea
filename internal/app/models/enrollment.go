package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment binds one student to one course. At most one enrollment may
// exist per (student, course) pair. CompletedAt is set exactly once, when
// every lesson of the course has been completed, and is only cleared by
// unenrolling.
type Enrollment struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	StudentID    uuid.UUID  `json:"studentId" db:"student_id"`
	CourseID     uuid.UUID  `json:"courseId" db:"course_id"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	EnrolledAt   time.Time  `json:"enrolledAt" db:"enrolled_at"` // Immutable after creation
	CompletedAt  *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	LastAccessed time.Time  `json:"lastAccessed" db:"last_accessed"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
}

// Completed reports whether the whole course has been finished.
func (e *Enrollment) Completed() bool {
	return e.CompletedAt != nil
}
