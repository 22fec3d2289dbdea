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
	"github.com/ljcourses/backend/internal/pkg/helpers"
	"github.com/ljcourses/backend/internal/pkg/validation"
)

// CourseService defines the interface for course catalog and authoring operations
type CourseService interface {
	ListCourses(ctx context.Context, filter dto.CourseFilterRequest, page, size int) (*dto.CourseListResponse, error)
	GetCourseBySlug(ctx context.Context, slug string) (*dto.CourseDetailResponse, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (*dto.CourseDetailResponse, error)
	CreateCourse(ctx context.Context, instructorID uuid.UUID, req *dto.CreateCourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, actor Actor, courseID uuid.UUID, req *dto.UpdateCourseRequest) (*models.Course, error)
	PublishCourse(ctx context.Context, actor Actor, courseID uuid.UUID, published bool) error
	DeleteCourse(ctx context.Context, actor Actor, courseID uuid.UUID) error
}

// Actor identifies the authenticated user performing an operation.
type Actor struct {
	UserID uuid.UUID
	Role   models.RoleType
}

// CanManageCourse reports whether the actor may modify the given course.
// Admins manage everything; instructors manage only their own courses.
func (a Actor) CanManageCourse(course *models.Course) bool {
	if a.Role == models.RoleAdmin {
		return true
	}
	if a.Role != models.RoleInstructor {
		return false
	}
	return course.InstructorID != nil && *course.InstructorID == a.UserID
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	lessonRepo *repositories.LessonRepository
}

// NewCourseService creates a new course service
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	lessonRepo *repositories.LessonRepository,
) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		lessonRepo: lessonRepo,
	}
}

// ListCourses returns the published catalog page matching the filter
func (s *courseServiceImpl) ListCourses(ctx context.Context, filter dto.CourseFilterRequest, page, size int) (*dto.CourseListResponse, error) {
	params := repositories.ListCoursesParams{
		PublishedOnly: true,
		FeaturedOnly:  filter.FeaturedOnly,
		Page:          page,
		Size:          size,
	}

	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		params.CategorySlug = &slug
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		params.Search = &search
	}
	if filter.Difficulty != "" {
		level, err := models.ParseDifficultyLevel(filter.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
		}
		params.Difficulty = &level
	}
	if filter.Instructor != "" {
		instructorID, err := uuid.Parse(filter.Instructor)
		if err != nil {
			return nil, fmt.Errorf("%w: instructor must be a valid id", apperrors.ErrValidationFailed)
		}
		params.InstructorID = &instructorID
	}

	items, total, err := s.courseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	courses := make([]dto.CourseResponse, 0, len(items))
	for i := range items {
		courses = append(courses, dto.FromCourse(&items[i].Course, items[i].LessonCount))
	}

	return &dto.CourseListResponse{
		Courses:    courses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

func (s *courseServiceImpl) toDetailResponse(ctx context.Context, details *repositories.CourseDetails) (*dto.CourseDetailResponse, error) {
	lessons, err := s.lessonRepo.ListByCourse(ctx, details.Course.ID)
	if err != nil {
		return nil, err
	}
	details.Course.Lessons = lessons

	response := dto.FromCourseDetail(&details.Course)
	return &response, nil
}

// GetCourseBySlug returns a course with its ordered lesson list
func (s *courseServiceImpl) GetCourseBySlug(ctx context.Context, slug string) (*dto.CourseDetailResponse, error) {
	details, err := s.courseRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.toDetailResponse(ctx, details)
}

// GetCourseByID returns a course with its ordered lesson list
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id uuid.UUID) (*dto.CourseDetailResponse, error) {
	details, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetailResponse(ctx, details)
}

func parseDifficulty(value *string) (*models.DifficultyLevel, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	level, err := models.ParseDifficultyLevel(*value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	return &level, nil
}

// CreateCourse creates an unpublished course owned by the instructor
func (s *courseServiceImpl) CreateCourse(ctx context.Context, instructorID uuid.UUID, req *dto.CreateCourseRequest) (*models.Course, error) {
	title := strings.TrimSpace(req.Title)
	slug := strings.TrimSpace(req.Slug)

	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidSlug(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase and dash separated", apperrors.ErrValidationFailed)
	}

	difficulty, err := parseDifficulty(req.DifficultyLevel)
	if err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:           title,
		Slug:            slug,
		Description:     req.Description,
		Thumbnail:       req.Thumbnail,
		DurationHours:   req.DurationHours,
		DifficultyLevel: difficulty,
		InstructorID:    &instructorID,
		CategoryID:      req.CategoryID,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// loadManagedCourse fetches a course and checks the actor may modify it
func (s *courseServiceImpl) loadManagedCourse(ctx context.Context, actor Actor, courseID uuid.UUID) (*models.Course, error) {
	details, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !actor.CanManageCourse(&details.Course) {
		return nil, apperrors.ErrPermissionDenied
	}
	return &details.Course, nil
}

// UpdateCourse updates course fields owned by the actor
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, actor Actor, courseID uuid.UUID, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.loadManagedCourse(ctx, actor, courseID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}

	difficulty, err := parseDifficulty(req.DifficultyLevel)
	if err != nil {
		return nil, err
	}

	course.Title = title
	course.Description = req.Description
	course.Thumbnail = req.Thumbnail
	course.DurationHours = req.DurationHours
	course.DifficultyLevel = difficulty
	course.CategoryID = req.CategoryID
	if req.IsFeatured != nil {
		course.IsFeatured = *req.IsFeatured
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// PublishCourse publishes or unpublishes a course
func (s *courseServiceImpl) PublishCourse(ctx context.Context, actor Actor, courseID uuid.UUID, published bool) error {
	course, err := s.loadManagedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}
	return s.courseRepo.SetPublished(ctx, course.ID, published)
}

// DeleteCourse removes a course with all its lessons and enrollments
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, actor Actor, courseID uuid.UUID) error {
	course, err := s.loadManagedCourse(ctx, actor, courseID)
	if err != nil {
		return err
	}
	return s.courseRepo.Delete(ctx, course.ID)
}
