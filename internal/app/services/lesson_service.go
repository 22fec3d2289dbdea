package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

// LessonService defines the interface for lesson authoring operations
type LessonService interface {
	ListLessons(ctx context.Context, courseID uuid.UUID) ([]dto.LessonResponse, error)
	GetLesson(ctx context.Context, lessonID uuid.UUID) (*models.Lesson, error)
	AddLesson(ctx context.Context, actor Actor, courseID uuid.UUID, req *dto.CreateLessonRequest) (*models.Lesson, error)
	UpdateLesson(ctx context.Context, actor Actor, lessonID uuid.UUID, req *dto.UpdateLessonRequest) (*models.Lesson, error)
	DeleteLesson(ctx context.Context, actor Actor, lessonID uuid.UUID) error
}

// lessonServiceImpl implements the LessonService interface
type lessonServiceImpl struct {
	lessonRepo *repositories.LessonRepository
	courseRepo *repositories.CourseRepository
}

// NewLessonService creates a new lesson service
func NewLessonService(
	lessonRepo *repositories.LessonRepository,
	courseRepo *repositories.CourseRepository,
) LessonService {
	return &lessonServiceImpl{
		lessonRepo: lessonRepo,
		courseRepo: courseRepo,
	}
}

// ListLessons returns the published lessons of a course in order
func (s *lessonServiceImpl) ListLessons(ctx context.Context, courseID uuid.UUID) ([]dto.LessonResponse, error) {
	lessons, err := s.lessonRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, dto.FromLesson(lesson))
	}
	return responses, nil
}

// GetLesson returns one lesson by ID
func (s *lessonServiceImpl) GetLesson(ctx context.Context, lessonID uuid.UUID) (*models.Lesson, error) {
	return s.lessonRepo.GetByID(ctx, lessonID)
}

// checkCourseOwnership verifies the actor may author lessons in the course
func (s *lessonServiceImpl) checkCourseOwnership(ctx context.Context, actor Actor, courseID uuid.UUID) error {
	details, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !actor.CanManageCourse(&details.Course) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// AddLesson appends a lesson to a course at the requested order
func (s *lessonServiceImpl) AddLesson(ctx context.Context, actor Actor, courseID uuid.UUID, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if err := s.checkCourseOwnership(ctx, actor, courseID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Order < 1 {
		return nil, fmt.Errorf("%w: lesson order must be positive", apperrors.ErrValidationFailed)
	}

	lesson := &models.Lesson{
		CourseID:      courseID,
		Title:         title,
		Description:   req.Description,
		Content:       req.Content,
		VideoURL:      req.VideoURL,
		VideoDuration: req.VideoDuration,
		ResourcesURL:  req.ResourcesURL,
		Order:         req.Order,
		IsFree:        req.IsFree,
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLesson updates lesson fields. The order is immutable here; moving a
// lesson means deleting and re-adding it so the per-course sequence stays
// free of holes made by half-finished swaps.
func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, actor Actor, lessonID uuid.UUID, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCourseOwnership(ctx, actor, lesson.CourseID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	lesson.Title = title
	lesson.Description = req.Description
	lesson.Content = req.Content
	lesson.VideoURL = req.VideoURL
	lesson.VideoDuration = req.VideoDuration
	lesson.ResourcesURL = req.ResourcesURL
	if req.IsFree != nil {
		lesson.IsFree = *req.IsFree
	}
	if req.IsPublished != nil {
		lesson.IsPublished = *req.IsPublished
	}

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson removes a lesson and its progress rows
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, actor Actor, lessonID uuid.UUID) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if err := s.checkCourseOwnership(ctx, actor, lesson.CourseID); err != nil {
		return err
	}
	return s.lessonRepo.Delete(ctx, lessonID)
}
