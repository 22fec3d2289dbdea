package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

// EnrollRequest represents a request to enroll into a course
type EnrollRequest struct {
	CourseID uuid.UUID `json:"courseId" binding:"required"`
}

// EnrollmentResponse represents one enrollment with its progress summary
type EnrollmentResponse struct {
	ID            uuid.UUID       `json:"id"`
	CourseID      uuid.UUID       `json:"courseId"`
	Course        *CourseResponse `json:"course,omitempty"`
	EnrolledAt    time.Time       `json:"enrolledAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	LastAccessed  time.Time       `json:"lastAccessed"`
	Progress      float64         `json:"progress" example:"0.42"`
	TotalLessons  int             `json:"totalLessons" example:"18"`
	DoneLessons   int             `json:"doneLessons" example:"7"`
}

// EnrollmentListResponse represents a student's enrollment list
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// EnrollmentProgress carries the progress numbers computed for one enrollment
type EnrollmentProgress struct {
	TotalLessons     int
	CompletedLessons int
}

// Fraction returns completed/total, or 0 for a course with no lessons.
func (p EnrollmentProgress) Fraction() float64 {
	if p.TotalLessons == 0 {
		return 0
	}
	return float64(p.CompletedLessons) / float64(p.TotalLessons)
}

// FromEnrollment converts an enrollment plus its progress counters
// to an EnrollmentResponse.
func FromEnrollment(enrollment *models.Enrollment, progress EnrollmentProgress) EnrollmentResponse {
	if enrollment == nil {
		return EnrollmentResponse{}
	}

	resp := EnrollmentResponse{
		ID:           enrollment.ID,
		CourseID:     enrollment.CourseID,
		EnrolledAt:   enrollment.EnrolledAt,
		CompletedAt:  enrollment.CompletedAt,
		LastAccessed: enrollment.LastAccessed,
		Progress:     progress.Fraction(),
		TotalLessons: progress.TotalLessons,
		DoneLessons:  progress.CompletedLessons,
	}
	if enrollment.Course != nil {
		course := FromCourse(enrollment.Course, progress.TotalLessons)
		resp.Course = &course
	}
	return resp
}
