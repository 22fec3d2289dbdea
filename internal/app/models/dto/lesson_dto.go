package dto

import (
	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

// LessonResponse represents a single lesson within a course
type LessonResponse struct {
	ID            uuid.UUID `json:"id"`
	CourseID      uuid.UUID `json:"courseId"`
	Title         string    `json:"title" example:"Goroutines and Channels"`
	Description   *string   `json:"description,omitempty"`
	Content       *string   `json:"content,omitempty"`
	VideoURL      *string   `json:"videoUrl,omitempty"`
	VideoDuration *int      `json:"videoDuration,omitempty" example:"540"`
	ResourcesURL  *string   `json:"resourcesUrl,omitempty"`
	Order         int       `json:"order" example:"3"`
	IsFree        bool      `json:"isFree"`
	IsPublished   bool      `json:"isPublished"`
}

// CreateLessonRequest represents a request to add a lesson to a course
type CreateLessonRequest struct {
	Title         string  `json:"title" binding:"required,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	Content       *string `json:"content,omitempty"`
	VideoURL      *string `json:"videoUrl,omitempty"`
	VideoDuration *int    `json:"videoDuration,omitempty"`
	ResourcesURL  *string `json:"resourcesUrl,omitempty"`
	Order         int     `json:"order" binding:"required,min=1"`
	IsFree        bool    `json:"isFree"`
}

// UpdateLessonRequest represents a request to update a lesson
type UpdateLessonRequest struct {
	Title         string  `json:"title" binding:"required,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	Content       *string `json:"content,omitempty"`
	VideoURL      *string `json:"videoUrl,omitempty"`
	VideoDuration *int    `json:"videoDuration,omitempty"`
	ResourcesURL  *string `json:"resourcesUrl,omitempty"`
	IsFree        *bool   `json:"isFree,omitempty"`
	IsPublished   *bool   `json:"isPublished,omitempty"`
}

// LessonListResponse represents the ordered lessons of a course
type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
}

// FromLesson converts a models.Lesson to a LessonResponse
func FromLesson(lesson *models.Lesson) LessonResponse {
	if lesson == nil {
		return LessonResponse{}
	}
	return LessonResponse{
		ID:            lesson.ID,
		CourseID:      lesson.CourseID,
		Title:         lesson.Title,
		Description:   lesson.Description,
		Content:       lesson.Content,
		VideoURL:      lesson.VideoURL,
		VideoDuration: lesson.VideoDuration,
		ResourcesURL:  lesson.ResourcesURL,
		Order:         lesson.Order,
		IsFree:        lesson.IsFree,
		IsPublished:   lesson.IsPublished,
	}
}
