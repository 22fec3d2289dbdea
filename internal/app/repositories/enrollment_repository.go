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
	"github.com/ljcourses/backend/internal/pkg/dberrors"
)

// EnrollmentStats summarizes a student's enrollments.
type EnrollmentStats struct {
	Enrolled  int
	Completed int
}

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *db.PostgresDB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(database *db.PostgresDB) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: database,
	}
}

const enrollmentColumns = `
	id, student_id, course_id, is_active, enrolled_at, completed_at, last_accessed`

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.IsActive,
		&enrollment.EnrolledAt,
		&enrollment.CompletedAt,
		&enrollment.LastAccessed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error scanning enrollment: %w", err)
	}
	return &enrollment, nil
}

// Create enrolls a student into a course. Enrolling twice is idempotent:
// when the unique (student, course) constraint fires the existing
// enrollment is returned unchanged instead of an error.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, bool, error) {
	query := `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING` + enrollmentColumns

	enrollment, err := scanEnrollment(r.db.Pool.QueryRow(ctx, query, studentID, courseID))
	if err == nil {
		return enrollment, true, nil
	}

	if dberrors.IsDuplicateConstraintError(err, "uq_enrollments_student_course") {
		existing, lookupErr := r.GetByStudentAndCourse(ctx, studentID, courseID)
		if lookupErr != nil {
			return nil, false, lookupErr
		}
		return existing, false, nil
	}

	if dberrors.IsForeignKeyConstraintError(err, "fk_enrollments_student") {
		return nil, false, apperrors.ErrUserNotFound
	}
	if dberrors.IsForeignKeyConstraintError(err, "fk_enrollments_course") {
		return nil, false, apperrors.ErrCourseNotFound
	}

	return nil, false, err
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	query := `SELECT` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	return scanEnrollment(r.db.Pool.QueryRow(ctx, query, id))
}

// GetByStudentAndCourse retrieves the enrollment of one student in one course
func (r *EnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	query := `
		SELECT` + enrollmentColumns + `
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2
	`
	return scanEnrollment(r.db.Pool.QueryRow(ctx, query, studentID, courseID))
}

// listByStudent retrieves enrollments with their course joined in.
// completedFilter selects in-progress rows (false) or completed rows (true).
func (r *EnrollmentRepository) listByStudent(ctx context.Context, studentID uuid.UUID, completed bool) ([]*models.Enrollment, error) {
	completedCond := "e.completed_at IS NULL"
	if completed {
		completedCond = "e.completed_at IS NOT NULL"
	}

	query := `
		SELECT e.id, e.student_id, e.course_id, e.is_active, e.enrolled_at,
		       e.completed_at, e.last_accessed,
		       c.id, c.title, c.slug, c.description, c.thumbnail, c.duration_hours,
		       c.difficulty_level, c.instructor_id, c.category_id, c.is_published,
		       c.is_featured, c.rating, c.total_ratings, c.created_at, c.updated_at,
		       c.published_at
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE e.student_id = $1 AND e.is_active AND ` + completedCond + `
		ORDER BY e.last_accessed DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID, &enrollment.StudentID, &enrollment.CourseID,
			&enrollment.IsActive, &enrollment.EnrolledAt,
			&enrollment.CompletedAt, &enrollment.LastAccessed,
			&course.ID, &course.Title, &course.Slug, &course.Description,
			&course.Thumbnail, &course.DurationHours, &course.DifficultyLevel,
			&course.InstructorID, &course.CategoryID, &course.IsPublished,
			&course.IsFeatured, &course.Rating, &course.TotalRatings,
			&course.CreatedAt, &course.UpdatedAt, &course.PublishedAt,
		); err != nil {
			return nil, err
		}
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListActiveByStudent retrieves enrollments still in progress
func (r *EnrollmentRepository) ListActiveByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Enrollment, error) {
	return r.listByStudent(ctx, studentID, false)
}

// ListCompletedByStudent retrieves finished enrollments
func (r *EnrollmentRepository) ListCompletedByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Enrollment, error) {
	return r.listByStudent(ctx, studentID, true)
}

// ProgressCounts returns published lesson totals and how many of them the
// enrollment has completed.
func (r *EnrollmentRepository) ProgressCounts(ctx context.Context, enrollmentID uuid.UUID) (total, completed int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM lessons l
			 JOIN enrollments e ON e.course_id = l.course_id
			 WHERE e.id = $1 AND l.is_published),
			(SELECT COUNT(*) FROM lesson_progress lp
			 JOIN lessons l ON l.id = lp.lesson_id
			 WHERE lp.enrollment_id = $1 AND lp.is_completed AND l.is_published)
	`
	err = r.db.Pool.QueryRow(ctx, query, enrollmentID).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting progress: %w", err)
	}
	return total, completed, nil
}

// TouchLastAccessed bumps the enrollment's last_accessed timestamp
func (r *EnrollmentRepository) TouchLastAccessed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE enrollments SET last_accessed = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error touching enrollment: %w", err)
	}
	return nil
}

// Stats returns enrollment counters for the profile page
func (r *EnrollmentRepository) Stats(ctx context.Context, studentID uuid.UUID) (EnrollmentStats, error) {
	var stats EnrollmentStats
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE completed_at IS NOT NULL)
		FROM enrollments
		WHERE student_id = $1 AND is_active
	`
	err := r.db.Pool.QueryRow(ctx, query, studentID).Scan(&stats.Enrolled, &stats.Completed)
	if err != nil {
		return EnrollmentStats{}, fmt.Errorf("error loading enrollment stats: %w", err)
	}
	return stats, nil
}

// Delete removes an enrollment and its progress rows. Unenrolling discards
// all progress; re-enrolling later starts from zero.
func (r *EnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
