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
	"github.com/ljcourses/backend/internal/pkg/validation"
)

// CategoryService defines the interface for category operations
type CategoryService interface {
	GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// categoryServiceImpl implements the CategoryService interface
type categoryServiceImpl struct {
	categoryRepo *repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo *repositories.CategoryRepository) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
	}
}

func validateCategoryAttributes(name string, color *string) error {
	if !validation.IsValidName(name) {
		return fmt.Errorf("%w: category name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}
	if color != nil && !validation.IsValidHexColor(*color) {
		return fmt.Errorf("%w: color must be a #RRGGBB value", apperrors.ErrValidationFailed)
	}
	return nil
}

// GetAllCategories returns all categories with their course counts
func (s *categoryServiceImpl) GetAllCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	items, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(items))
	for i := range items {
		responses = append(responses, dto.FromCategory(&items[i].Category, items[i].CourseCount))
	}
	return responses, nil
}

// GetCategoryBySlug returns one category
func (s *categoryServiceImpl) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.categoryRepo.GetBySlug(ctx, slug)
}

// CreateCategory creates a new category
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)

	if err := validateCategoryAttributes(name, req.Color); err != nil {
		return nil, err
	}
	if !validation.IsValidSlug(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase and dash separated", apperrors.ErrValidationFailed)
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates an existing category. The slug is immutable since
// it is part of public catalog URLs.
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := validateCategoryAttributes(name, req.Color); err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = req.Description
	category.Icon = req.Icon
	category.Color = req.Color

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category; its courses stay, uncategorized
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}
