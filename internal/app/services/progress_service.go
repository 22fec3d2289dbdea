package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

// progressStore is the persistence surface the progress service needs.
// *repositories.ProgressRepository satisfies it.
type progressStore interface {
	RecordView(ctx context.Context, enrollmentID, lessonID uuid.UUID, watchTime int) (*models.LessonProgress, error)
	ListByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]*models.LessonProgress, error)
	MarkLessonComplete(ctx context.Context, enrollmentID, lessonID uuid.UUID) (repositories.MarkCompleteResult, error)
}

// lessonCatalog resolves lessons and their ordering within a course.
// *repositories.LessonRepository satisfies it.
type lessonCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	NextAfter(ctx context.Context, courseID uuid.UUID, order int) (*models.Lesson, error)
}

// progressEnrollments is the slice of enrollmentStore the progress service
// needs, plus course resolution for building lesson URLs.
type progressEnrollments interface {
	Create(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, bool, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	ProgressCounts(ctx context.Context, enrollmentID uuid.UUID) (total, completed int, err error)
	TouchLastAccessed(ctx context.Context, id uuid.UUID) error
}

// ProgressService defines the interface for lesson progress operations
type ProgressService interface {
	RecordLessonView(ctx context.Context, studentID, lessonID uuid.UUID, watchTime int) (*models.LessonProgress, error)
	CompleteLesson(ctx context.Context, studentID, lessonID uuid.UUID) (dto.CompleteLessonResponse, error)
	GetCourseProgress(ctx context.Context, studentID, courseID uuid.UUID) (dto.CourseProgressResponse, error)
}

// progressServiceImpl implements the ProgressService interface
type progressServiceImpl struct {
	progress    progressStore
	enrollments progressEnrollments
	lessons     lessonCatalog
	courses     courseCatalog
	logger      zerolog.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(
	progress progressStore,
	enrollments progressEnrollments,
	lessons lessonCatalog,
	courses courseCatalog,
	logger zerolog.Logger,
) ProgressService {
	return &progressServiceImpl{
		progress:    progress,
		enrollments: enrollments,
		lessons:     lessons,
		courses:     courses,
		logger:      logger,
	}
}

// RecordLessonView records that the student watched a lesson. The progress
// row is created lazily on the first view; watch time accumulates across
// views and a completed lesson stays completed.
func (s *progressServiceImpl) RecordLessonView(ctx context.Context, studentID, lessonID uuid.UUID, watchTime int) (*models.LessonProgress, error) {
	if watchTime < 0 {
		return nil, fmt.Errorf("%w: watch time cannot be negative", apperrors.ErrValidationFailed)
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, lesson.CourseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progress.RecordView(ctx, enrollment.ID, lessonID, watchTime)
	if err != nil {
		return nil, err
	}

	if err := s.enrollments.TouchLastAccessed(ctx, enrollment.ID); err != nil {
		s.logger.Warn().Err(err).Str("enrollmentId", enrollment.ID.String()).Msg("Failed to touch enrollment")
	}

	return progress, nil
}

// CompleteLesson marks a lesson as completed for the student. Students who
// view a free lesson without enrolling are enrolled on the spot. The response
// carries the URL of the next lesson in order, or null after the last one.
func (s *progressServiceImpl) CompleteLesson(ctx context.Context, studentID, lessonID uuid.UUID) (dto.CompleteLessonResponse, error) {
	lesson, err := s.lessons.GetByID(ctx, lessonID)
	if err != nil {
		return dto.CompleteLessonResponse{}, err
	}

	enrollment, _, err := s.enrollments.Create(ctx, studentID, lesson.CourseID)
	if err != nil {
		return dto.CompleteLessonResponse{}, err
	}

	result, err := s.progress.MarkLessonComplete(ctx, enrollment.ID, lessonID)
	if err != nil {
		return dto.CompleteLessonResponse{}, err
	}

	if result.NewlyCompleted {
		s.logger.Info().
			Str("studentId", studentID.String()).
			Str("courseId", lesson.CourseID.String()).
			Msg("Course completed")
	}

	response := dto.CompleteLessonResponse{
		Success:         true,
		CourseCompleted: result.CourseCompleted,
	}

	next, err := s.lessons.NextAfter(ctx, lesson.CourseID, lesson.Order)
	if err != nil {
		if errors.Is(err, apperrors.ErrLessonNotFound) {
			// Last lesson of the course; nothing to link to.
			return response, nil
		}
		return dto.CompleteLessonResponse{}, err
	}

	details, err := s.courses.GetByID(ctx, lesson.CourseID)
	if err != nil {
		return dto.CompleteLessonResponse{}, err
	}

	url := fmt.Sprintf("/courses/%s/lessons/%s", details.Course.Slug, next.ID)
	response.NextLessonURL = &url
	return response, nil
}

// GetCourseProgress returns the full per-lesson completion state for the
// student's enrollment in a course.
func (s *progressServiceImpl) GetCourseProgress(ctx context.Context, studentID, courseID uuid.UUID) (dto.CourseProgressResponse, error) {
	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return dto.CourseProgressResponse{}, err
	}

	total, completed, err := s.enrollments.ProgressCounts(ctx, enrollment.ID)
	if err != nil {
		return dto.CourseProgressResponse{}, err
	}

	rows, err := s.progress.ListByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return dto.CourseProgressResponse{}, err
	}

	lessons := make([]dto.LessonProgressResponse, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, dto.FromLessonProgress(row))
	}

	progress := dto.EnrollmentProgress{
		TotalLessons:     total,
		CompletedLessons: completed,
	}

	return dto.CourseProgressResponse{
		EnrollmentID: enrollment.ID,
		CourseID:     courseID,
		Progress:     progress.Fraction(),
		TotalLessons: total,
		DoneLessons:  completed,
		Completed:    enrollment.Completed(),
		Lessons:      lessons,
	}, nil
}
