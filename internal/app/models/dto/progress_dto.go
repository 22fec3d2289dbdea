package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

// RecordViewRequest represents a lesson view heartbeat
type RecordViewRequest struct {
	WatchTime int `json:"watchTime" binding:"omitempty,min=0" example:"120"`
}

// LessonProgressResponse represents per-lesson completion state
type LessonProgressResponse struct {
	LessonID    uuid.UUID  `json:"lessonId"`
	IsCompleted bool       `json:"isCompleted"`
	WatchTime   int        `json:"watchTime"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// CompleteLessonResponse is the exact wire shape returned by the
// complete-lesson endpoint. NextLessonURL is null when the completed
// lesson was the last one in the course.
type CompleteLessonResponse struct {
	Success         bool    `json:"success"`
	NextLessonURL   *string `json:"next_lesson_url"`
	CourseCompleted bool    `json:"course_completed"`
}

// CourseProgressResponse represents full progress for one enrollment
type CourseProgressResponse struct {
	EnrollmentID uuid.UUID                `json:"enrollmentId"`
	CourseID     uuid.UUID                `json:"courseId"`
	Progress     float64                  `json:"progress"`
	TotalLessons int                      `json:"totalLessons"`
	DoneLessons  int                      `json:"doneLessons"`
	Completed    bool                     `json:"completed"`
	Lessons      []LessonProgressResponse `json:"lessons"`
}

// FromLessonProgress converts a models.LessonProgress to its response form
func FromLessonProgress(progress *models.LessonProgress) LessonProgressResponse {
	if progress == nil {
		return LessonProgressResponse{}
	}
	return LessonProgressResponse{
		LessonID:    progress.LessonID,
		IsCompleted: progress.IsCompleted,
		WatchTime:   progress.WatchTime,
		StartedAt:   progress.StartedAt,
		CompletedAt: progress.CompletedAt,
	}
}
