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

// LessonRepository handles database operations for lessons
type LessonRepository struct {
	db *pgxpool.Pool
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
	}
}

const lessonColumns = `
	id, course_id, title, description, content, video_url, video_duration,
	resources_url, lesson_order, is_free, is_published, created_at, updated_at`

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	var lesson models.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.Description,
		&lesson.Content,
		&lesson.VideoURL,
		&lesson.VideoDuration,
		&lesson.ResourcesURL,
		&lesson.Order,
		&lesson.IsFree,
		&lesson.IsPublished,
		&lesson.CreatedAt,
		&lesson.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error scanning lesson: %w", err)
	}
	return &lesson, nil
}

// Create inserts a new lesson
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (course_id, title, description, content, video_url,
			video_duration, resources_url, lesson_order, is_free)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_published, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		lesson.CourseID, lesson.Title, lesson.Description, lesson.Content,
		lesson.VideoURL, lesson.VideoDuration, lesson.ResourcesURL,
		lesson.Order, lesson.IsFree,
	).Scan(&lesson.ID, &lesson.IsPublished, &lesson.CreatedAt, &lesson.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_lessons_course_order") {
			return apperrors.ErrLessonOrderConflict
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}

// GetByID retrieves a lesson by ID
func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	query := `SELECT` + lessonColumns + ` FROM lessons WHERE id = $1`
	return scanLesson(r.db.QueryRow(ctx, query, id))
}

// ListByCourse retrieves the published lessons of a course in order
func (r *LessonRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.Lesson, error) {
	query := `
		SELECT` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1 AND is_published
		ORDER BY lesson_order
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lessons, nil
}

// NextAfter returns the next published lesson of the course, ordered by
// lesson_order, strictly after the given order. Returns ErrLessonNotFound
// when the given order belongs to the last lesson.
func (r *LessonRepository) NextAfter(ctx context.Context, courseID uuid.UUID, order int) (*models.Lesson, error) {
	query := `
		SELECT` + lessonColumns + `
		FROM lessons
		WHERE course_id = $1 AND lesson_order > $2 AND is_published
		ORDER BY lesson_order
		LIMIT 1
	`
	return scanLesson(r.db.QueryRow(ctx, query, courseID, order))
}

// CountByCourse returns the number of published lessons in a course
func (r *LessonRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM lessons WHERE course_id = $1 AND is_published`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting lessons: %w", err)
	}
	return count, nil
}

// Update updates the mutable fields of a lesson
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	query := `
		UPDATE lessons
		SET title = $1, description = $2, content = $3, video_url = $4,
			video_duration = $5, resources_url = $6, is_free = $7,
			is_published = $8, updated_at = now()
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		lesson.Title, lesson.Description, lesson.Content, lesson.VideoURL,
		lesson.VideoDuration, lesson.ResourcesURL, lesson.IsFree,
		lesson.IsPublished, lesson.ID)
	if err != nil {
		return fmt.Errorf("error updating lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}

// Delete deletes a lesson by ID
func (r *LessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLessonNotFound
	}

	return nil
}
