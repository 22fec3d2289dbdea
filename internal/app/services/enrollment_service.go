package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

// enrollmentStore is the persistence surface the enrollment service needs.
// *repositories.EnrollmentRepository satisfies it.
type enrollmentStore interface {
	Create(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, bool, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	ListActiveByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Enrollment, error)
	ListCompletedByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Enrollment, error)
	ProgressCounts(ctx context.Context, enrollmentID uuid.UUID) (total, completed int, err error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// courseCatalog resolves courses for enrollment checks.
// *repositories.CourseRepository satisfies it.
type courseCatalog interface {
	GetByID(ctx context.Context, id uuid.UUID) (*repositories.CourseDetails, error)
}

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	Unenroll(ctx context.Context, studentID, courseID uuid.UUID) error
	GetEnrollmentProgress(ctx context.Context, studentID, courseID uuid.UUID) (dto.EnrollmentResponse, error)
	ListMyCourses(ctx context.Context, studentID uuid.UUID) ([]dto.EnrollmentResponse, error)
	ListCompletedCourses(ctx context.Context, studentID uuid.UUID) ([]dto.EnrollmentResponse, error)
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollments enrollmentStore
	courses     courseCatalog
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(enrollments enrollmentStore, courses courseCatalog, logger zerolog.Logger) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollments: enrollments,
		courses:     courses,
		logger:      logger,
	}
}

// Enroll enrolls a student into a published course. Enrolling twice returns
// the existing enrollment unchanged, with its original enrollment date.
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	details, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !details.Course.IsPublished {
		return nil, apperrors.ErrCourseNotFound
	}

	enrollment, created, err := s.enrollments.Create(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.Info().
			Str("studentId", studentID.String()).
			Str("courseId", courseID.String()).
			Msg("Student enrolled")
	}

	return enrollment, nil
}

// Unenroll removes the student's enrollment and all progress made in the
// course. Re-enrolling later starts from scratch. Unenrolling without an
// enrollment is a no-op, so repeated unenrolls succeed.
func (s *enrollmentServiceImpl) Unenroll(ctx context.Context, studentID, courseID uuid.UUID) error {
	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil
		}
		return err
	}

	if err := s.enrollments.Delete(ctx, enrollment.ID); err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil
		}
		return err
	}

	s.logger.Info().
		Str("studentId", studentID.String()).
		Str("courseId", courseID.String()).
		Msg("Student unenrolled")

	return nil
}

func (s *enrollmentServiceImpl) withProgress(ctx context.Context, enrollment *models.Enrollment) (dto.EnrollmentResponse, error) {
	total, completed, err := s.enrollments.ProgressCounts(ctx, enrollment.ID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	progress := dto.EnrollmentProgress{
		TotalLessons:     total,
		CompletedLessons: completed,
	}
	return dto.FromEnrollment(enrollment, progress), nil
}

// GetEnrollmentProgress returns one enrollment with its completion fraction
func (s *enrollmentServiceImpl) GetEnrollmentProgress(ctx context.Context, studentID, courseID uuid.UUID) (dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}
	return s.withProgress(ctx, enrollment)
}

func (s *enrollmentServiceImpl) toResponses(ctx context.Context, enrollments []*models.Enrollment) ([]dto.EnrollmentResponse, error) {
	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		response, err := s.withProgress(ctx, enrollment)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}
	return responses, nil
}

// ListMyCourses returns the student's in-progress enrollments
func (s *enrollmentServiceImpl) ListMyCourses(ctx context.Context, studentID uuid.UUID) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.ListActiveByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, enrollments)
}

// ListCompletedCourses returns the student's finished enrollments
func (s *enrollmentServiceImpl) ListCompletedCourses(ctx context.Context, studentID uuid.UUID) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.ListCompletedByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, enrollments)
}
