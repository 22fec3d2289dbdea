package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

// CourseResponse represents a course in catalog listings and detail views
type CourseResponse struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title" example:"Go for Backend Engineers"`
	Slug            string     `json:"slug" example:"go-for-backend-engineers"`
	Description     *string    `json:"description,omitempty"`
	Thumbnail       *string    `json:"thumbnail,omitempty"`
	DurationHours   *int       `json:"durationHours,omitempty" example:"24"`
	DifficultyLevel *string    `json:"difficultyLevel,omitempty" example:"Intermediate"`
	InstructorName  *string    `json:"instructorName,omitempty" example:"Jane Doe"`
	CategoryName    *string    `json:"categoryName,omitempty" example:"Web Development"`
	CategorySlug    *string    `json:"categorySlug,omitempty"`
	IsFeatured      bool       `json:"isFeatured"`
	Rating          float64    `json:"rating" example:"4.7"`
	TotalRatings    int        `json:"totalRatings" example:"128"`
	LessonCount     int        `json:"lessonCount" example:"18"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`
}

// CourseDetailResponse represents a course with its lesson list
type CourseDetailResponse struct {
	CourseResponse
	Lessons []LessonResponse `json:"lessons"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title           string     `json:"title" binding:"required,min=2,max=200"`
	Slug            string     `json:"slug" binding:"required"`
	Description     *string    `json:"description,omitempty"`
	Thumbnail       *string    `json:"thumbnail,omitempty"`
	DurationHours   *int       `json:"durationHours,omitempty"`
	DifficultyLevel *string    `json:"difficultyLevel,omitempty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
}

// UpdateCourseRequest represents a request to update a course
type UpdateCourseRequest struct {
	Title           string     `json:"title" binding:"required,min=2,max=200"`
	Description     *string    `json:"description,omitempty"`
	Thumbnail       *string    `json:"thumbnail,omitempty"`
	DurationHours   *int       `json:"durationHours,omitempty"`
	DifficultyLevel *string    `json:"difficultyLevel,omitempty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty"`
	IsFeatured      *bool      `json:"isFeatured,omitempty"`
}

// CourseFilterRequest represents catalog filter query parameters
type CourseFilterRequest struct {
	CategorySlug string `form:"category"`
	Difficulty   string `form:"difficulty"`
	Instructor   string `form:"instructor" binding:"omitempty,uuid"`
	Search       string `form:"search"`
	FeaturedOnly bool   `form:"featured"`
}

// CourseListResponse represents a paginated list of courses
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(course *models.Course, lessonCount int) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}

	resp := CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Slug:          course.Slug,
		Description:   course.Description,
		Thumbnail:     course.Thumbnail,
		DurationHours: course.DurationHours,
		IsFeatured:    course.IsFeatured,
		Rating:        course.Rating,
		TotalRatings:  course.TotalRatings,
		LessonCount:   lessonCount,
		PublishedAt:   course.PublishedAt,
	}

	if course.DifficultyLevel != nil {
		level := string(*course.DifficultyLevel)
		resp.DifficultyLevel = &level
	}
	if course.Instructor != nil {
		resp.InstructorName = &course.Instructor.FullName
	}
	if course.Category != nil {
		resp.CategoryName = &course.Category.Name
		resp.CategorySlug = &course.Category.Slug
	}
	return resp
}

// FromCourseDetail converts a course with lessons to a CourseDetailResponse
func FromCourseDetail(course *models.Course) CourseDetailResponse {
	detail := CourseDetailResponse{
		CourseResponse: FromCourse(course, len(course.Lessons)),
		Lessons:        make([]LessonResponse, 0, len(course.Lessons)),
	}
	for _, lesson := range course.Lessons {
		detail.Lessons = append(detail.Lessons, FromLesson(lesson))
	}
	return detail
}
