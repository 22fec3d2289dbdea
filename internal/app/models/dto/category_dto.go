package dto

import (
	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

// CategoryResponse represents a course category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" example:"Web Development"`
	Slug        string    `json:"slug" example:"web-development"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty" example:"code"`
	Color       *string   `json:"color,omitempty" example:"#FF6B6B"`
	CourseCount int       `json:"courseCount" example:"12"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Slug        string  `json:"slug" binding:"required"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CategoryListResponse represents the response for a list of categories
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// FromCategory converts a models.Category to a CategoryResponse
func FromCategory(category *models.Category, courseCount int) CategoryResponse {
	if category == nil {
		return CategoryResponse{}
	}
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Icon:        category.Icon,
		Color:       category.Color,
		CourseCount: courseCount,
	}
}
