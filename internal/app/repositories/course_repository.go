package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
	"github.com/ljcourses/backend/internal/pkg/dberrors"
	"github.com/ljcourses/backend/internal/pkg/logger"
)

// CourseDetails joins a course with its instructor name, category and
// lesson count for catalog listings.
type CourseDetails struct {
	Course      models.Course
	LessonCount int
}

// ListCoursesParams holds parameters for catalog filtering and pagination.
type ListCoursesParams struct {
	CategorySlug  *string
	Difficulty    *models.DifficultyLevel
	InstructorID  *uuid.UUID
	Search        *string
	FeaturedOnly  bool
	PublishedOnly bool
	Page          int
	Size          int
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// selectCourseDetailsQuery builds the shared select with joins for listings.
func (r *CourseRepository) selectCourseDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.title", "c.slug", "c.description", "c.thumbnail",
		"c.duration_hours", "c.difficulty_level", "c.instructor_id", "c.category_id",
		"c.is_published", "c.is_featured", "c.rating", "c.total_ratings",
		"c.created_at", "c.updated_at", "c.published_at",
		"u.full_name AS instructor_name",
		"cat.name AS category_name", "cat.slug AS category_slug",
		"(SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id AND l.is_published) AS lesson_count",
	).From("courses c").
		LeftJoin("users u ON c.instructor_id = u.id").
		LeftJoin("categories cat ON c.category_id = cat.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanCourseDetails(row pgx.Row) (*CourseDetails, error) {
	var details CourseDetails
	var instructorName *string
	var categoryName, categorySlug *string

	err := row.Scan(
		&details.Course.ID, &details.Course.Title, &details.Course.Slug,
		&details.Course.Description, &details.Course.Thumbnail,
		&details.Course.DurationHours, &details.Course.DifficultyLevel,
		&details.Course.InstructorID, &details.Course.CategoryID,
		&details.Course.IsPublished, &details.Course.IsFeatured,
		&details.Course.Rating, &details.Course.TotalRatings,
		&details.Course.CreatedAt, &details.Course.UpdatedAt, &details.Course.PublishedAt,
		&instructorName, &categoryName, &categorySlug,
		&details.LessonCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error scanning course: %w", err)
	}

	if instructorName != nil && details.Course.InstructorID != nil {
		details.Course.Instructor = &models.User{
			ID:       *details.Course.InstructorID,
			FullName: *instructorName,
		}
	}
	if categoryName != nil && details.Course.CategoryID != nil {
		details.Course.Category = &models.Category{
			ID:   *details.Course.CategoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}
	}

	return &details, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, slug, description, thumbnail, duration_hours,
			difficulty_level, instructor_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_published, is_featured, rating, total_ratings, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.Title, course.Slug, course.Description, course.Thumbnail,
		course.DurationHours, course.DifficultyLevel, course.InstructorID, course.CategoryID,
	).Scan(
		&course.ID, &course.IsPublished, &course.IsFeatured,
		&course.Rating, &course.TotalRatings, &course.CreatedAt, &course.UpdatedAt,
	)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_courses_slug") {
			return apperrors.ErrCourseSlugExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course with instructor, category and lesson count
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*CourseDetails, error) {
	sql, args, err := r.selectCourseDetailsQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, err
	}
	return scanCourseDetails(r.db.QueryRow(ctx, sql, args...))
}

// GetBySlug retrieves a course by its slug
func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*CourseDetails, error) {
	sql, args, err := r.selectCourseDetailsQuery().Where(squirrel.Eq{"c.slug": slug}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course SQL")
		return nil, err
	}
	return scanCourseDetails(r.db.QueryRow(ctx, sql, args...))
}

// listCoursesConditions translates the filter into a WHERE clause shared by
// the page query and the count query. Both queries join users and categories
// so every condition can reference u.* and cat.* columns.
func listCoursesConditions(params ListCoursesParams) squirrel.And {
	conditions := squirrel.And{}
	if params.PublishedOnly {
		conditions = append(conditions, squirrel.Eq{"c.is_published": true})
	}
	if params.CategorySlug != nil {
		conditions = append(conditions, squirrel.Eq{"cat.slug": *params.CategorySlug})
	}
	if params.Difficulty != nil {
		conditions = append(conditions, squirrel.Eq{"c.difficulty_level": *params.Difficulty})
	}
	if params.InstructorID != nil {
		conditions = append(conditions, squirrel.Eq{"c.instructor_id": *params.InstructorID})
	}
	if params.Search != nil {
		pattern := "%" + *params.Search + "%"
		conditions = append(conditions, squirrel.Or{
			squirrel.ILike{"c.title": pattern},
			squirrel.ILike{"c.description": pattern},
			squirrel.ILike{"u.full_name": pattern},
		})
	}
	if params.FeaturedOnly {
		conditions = append(conditions, squirrel.Eq{"c.is_featured": true})
	}
	return conditions
}

// List retrieves courses matching the filter, newest first, with a total count
func (r *CourseRepository) List(ctx context.Context, params ListCoursesParams) ([]CourseDetails, int64, error) {
	base := r.selectCourseDetailsQuery()
	countQuery := squirrel.Select("COUNT(*)").From("courses c").
		LeftJoin("users u ON c.instructor_id = u.id").
		LeftJoin("categories cat ON c.category_id = cat.id").
		PlaceholderFormat(squirrel.Dollar)

	if conditions := listCoursesConditions(params); len(conditions) > 0 {
		base = base.Where(conditions)
		countQuery = countQuery.Where(conditions)
	}

	countSql, countArgs, err := countQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	offset := uint64(0)
	limit := uint64(params.Size)
	if params.Page > 1 {
		offset = uint64((params.Page - 1) * params.Size)
	}

	sql, args, err := base.
		OrderBy("c.is_featured DESC", "c.published_at DESC NULLS LAST", "c.created_at DESC").
		Offset(offset).
		Limit(limit).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var courses []CourseDetails
	for rows.Next() {
		details, err := scanCourseDetails(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *details)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update updates the mutable fields of a course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, description = $2, thumbnail = $3, duration_hours = $4,
			difficulty_level = $5, category_id = $6, is_featured = $7, updated_at = now()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Title, course.Description, course.Thumbnail, course.DurationHours,
		course.DifficultyLevel, course.CategoryID, course.IsFeatured, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// SetPublished publishes or unpublishes a course. The first publish
// stamps published_at; later toggles keep the original timestamp.
func (r *CourseRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `
		UPDATE courses
		SET is_published = $1,
			published_at = CASE WHEN $1 THEN COALESCE(published_at, now()) ELSE published_at END,
			updated_at = now()
		WHERE id = $2
	`

	cmdTag, err := r.db.Exec(ctx, query, published, id)
	if err != nil {
		return fmt.Errorf("error publishing course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course and, via cascading constraints, its lessons,
// enrollments and progress rows.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
