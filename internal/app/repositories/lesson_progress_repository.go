package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/db"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

// MarkCompleteResult reports the outcome of completing a lesson.
type MarkCompleteResult struct {
	// CourseCompleted is true when every published lesson of the course
	// is now completed for this enrollment.
	CourseCompleted bool
	// NewlyCompleted is true when this call was the one that stamped the
	// enrollment's completed_at. At most one concurrent caller sees true.
	NewlyCompleted bool
}

// ProgressRepository handles database operations for lesson progress
type ProgressRepository struct {
	db *db.PostgresDB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(database *db.PostgresDB) *ProgressRepository {
	return &ProgressRepository{
		db: database,
	}
}

const progressColumns = `
	id, enrollment_id, lesson_id, is_completed, watch_time, started_at,
	completed_at, last_accessed`

func scanProgress(row pgx.Row) (*models.LessonProgress, error) {
	var progress models.LessonProgress
	err := row.Scan(
		&progress.ID,
		&progress.EnrollmentID,
		&progress.LessonID,
		&progress.IsCompleted,
		&progress.WatchTime,
		&progress.StartedAt,
		&progress.CompletedAt,
		&progress.LastAccessed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning lesson progress: %w", err)
	}
	return &progress, nil
}

// RecordView upserts the progress row for a lesson view. The row is created
// lazily on first view; repeated views accumulate watch time and bump
// last_accessed without ever clearing a completion.
func (r *ProgressRepository) RecordView(ctx context.Context, enrollmentID, lessonID uuid.UUID, watchTime int) (*models.LessonProgress, error) {
	query := `
		INSERT INTO lesson_progress (enrollment_id, lesson_id, watch_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (enrollment_id, lesson_id) DO UPDATE
		SET watch_time = lesson_progress.watch_time + EXCLUDED.watch_time,
		    last_accessed = now()
		RETURNING` + progressColumns

	progress, err := scanProgress(r.db.Pool.QueryRow(ctx, query, enrollmentID, lessonID, watchTime))
	if err != nil {
		return nil, fmt.Errorf("error recording lesson view: %w", err)
	}
	return progress, nil
}

// GetByEnrollmentAndLesson retrieves one progress row
func (r *ProgressRepository) GetByEnrollmentAndLesson(ctx context.Context, enrollmentID, lessonID uuid.UUID) (*models.LessonProgress, error) {
	query := `
		SELECT` + progressColumns + `
		FROM lesson_progress
		WHERE enrollment_id = $1 AND lesson_id = $2
	`
	return scanProgress(r.db.Pool.QueryRow(ctx, query, enrollmentID, lessonID))
}

// ListByEnrollment retrieves all progress rows for an enrollment, in
// lesson order
func (r *ProgressRepository) ListByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]*models.LessonProgress, error) {
	query := `
		SELECT lp.id, lp.enrollment_id, lp.lesson_id, lp.is_completed,
		       lp.watch_time, lp.started_at, lp.completed_at, lp.last_accessed
		FROM lesson_progress lp
		JOIN lessons l ON l.id = lp.lesson_id
		WHERE lp.enrollment_id = $1
		ORDER BY l.lesson_order
	`

	rows, err := r.db.Pool.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.LessonProgress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, progress)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// MarkLessonComplete marks one lesson completed for an enrollment and, when
// that was the last remaining lesson, completes the enrollment itself.
//
// The whole operation runs in one transaction holding a row lock on the
// enrollment, so two concurrent completions of the last two lessons cannot
// both miss the course-completion check. Lesson completion is monotonic:
// a second completion of the same lesson keeps the original completed_at.
// The enrollment's completed_at is guarded by a compare-and-set on NULL,
// so exactly one caller ever stamps it.
func (r *ProgressRepository) MarkLessonComplete(ctx context.Context, enrollmentID, lessonID uuid.UUID) (MarkCompleteResult, error) {
	var result MarkCompleteResult

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var courseID uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT course_id FROM enrollments WHERE id = $1 FOR UPDATE`,
			enrollmentID).Scan(&courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEnrollmentNotFound
			}
			return fmt.Errorf("error locking enrollment: %w", err)
		}

		var lessonOrder int
		err = tx.QueryRow(ctx,
			`SELECT lesson_order FROM lessons WHERE id = $1 AND course_id = $2`,
			lessonID, courseID).Scan(&lessonOrder)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrLessonNotInCourse
			}
			return fmt.Errorf("error verifying lesson: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO lesson_progress (enrollment_id, lesson_id, is_completed, completed_at)
			VALUES ($1, $2, TRUE, now())
			ON CONFLICT (enrollment_id, lesson_id) DO UPDATE
			SET is_completed = TRUE,
			    completed_at = COALESCE(lesson_progress.completed_at, now()),
			    last_accessed = now()`,
			enrollmentID, lessonID)
		if err != nil {
			return fmt.Errorf("error completing lesson: %w", err)
		}

		var total, completed int
		err = tx.QueryRow(ctx, `
			SELECT
				(SELECT COUNT(*) FROM lessons
				 WHERE course_id = $2 AND is_published),
				(SELECT COUNT(*) FROM lesson_progress lp
				 JOIN lessons l ON l.id = lp.lesson_id
				 WHERE lp.enrollment_id = $1 AND lp.is_completed AND l.is_published)`,
			enrollmentID, courseID).Scan(&total, &completed)
		if err != nil {
			return fmt.Errorf("error counting completed lessons: %w", err)
		}

		// A course with no lessons never auto-completes.
		if total > 0 && completed >= total {
			result.CourseCompleted = true

			cmdTag, err := tx.Exec(ctx,
				`UPDATE enrollments SET completed_at = now()
				 WHERE id = $1 AND completed_at IS NULL`,
				enrollmentID)
			if err != nil {
				return fmt.Errorf("error completing enrollment: %w", err)
			}
			result.NewlyCompleted = cmdTag.RowsAffected() > 0
		}

		_, err = tx.Exec(ctx,
			`UPDATE enrollments SET last_accessed = now() WHERE id = $1`,
			enrollmentID)
		if err != nil {
			return fmt.Errorf("error touching enrollment: %w", err)
		}

		return nil
	})

	if err != nil {
		return MarkCompleteResult{}, err
	}
	return result, nil
}
