package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
	"github.com/ljcourses/backend/internal/pkg/dberrors"
)

// CategoryWithCount pairs a category with the number of published courses in it.
type CategoryWithCount struct {
	Category    models.Category
	CourseCount int
}

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var category models.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.Icon,
		&category.Color,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error scanning category: %w", err)
	}
	return &category, nil
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, icon, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		category.Name, category.Slug, category.Description, category.Icon, category.Color,
	).Scan(&category.ID, &category.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error creating category: %w", err)
	}

	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, color, created_at
		FROM categories
		WHERE id = $1
	`
	return scanCategory(r.db.QueryRow(ctx, query, id))
}

// GetBySlug retrieves a category by its slug
func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, color, created_at
		FROM categories
		WHERE slug = $1
	`
	return scanCategory(r.db.QueryRow(ctx, query, slug))
}

// GetAll retrieves all categories with their published course counts
func (r *CategoryRepository) GetAll(ctx context.Context) ([]CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.icon, c.color, c.created_at,
		       COUNT(co.id) AS course_count
		FROM categories c
		LEFT JOIN courses co ON co.category_id = c.id AND co.is_published = TRUE
		GROUP BY c.id
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []CategoryWithCount
	for rows.Next() {
		var item CategoryWithCount
		if err := rows.Scan(
			&item.Category.ID,
			&item.Category.Name,
			&item.Category.Slug,
			&item.Category.Description,
			&item.Category.Icon,
			&item.Category.Color,
			&item.Category.CreatedAt,
			&item.CourseCount,
		); err != nil {
			return nil, err
		}
		categories = append(categories, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Update updates an existing category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, icon = $3, color = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		category.Name, category.Description, category.Icon, category.Color, category.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("error updating category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// Delete deletes a category by ID. Courses keep existing with a null category.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}
