package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ljcourses/backend/internal/app/migrations"
	"github.com/ljcourses/backend/internal/db"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

// testDB connects to the database named by TEST_DATABASE_URL and applies the
// schema. Tests using it are skipped when the variable is unset, so the
// suite stays runnable without a local PostgreSQL.
func testDB(t *testing.T) *db.PostgresDB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connecting to test database failed: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("pinging test database failed: %v", err)
	}

	if err := migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"); err != nil {
		t.Fatalf("applying migrations failed: %v", err)
	}

	return &db.PostgresDB{Pool: pool}
}

type progressFixture struct {
	studentID    uuid.UUID
	courseID     uuid.UUID
	lessonIDs    []uuid.UUID
	enrollmentID uuid.UUID
}

// seedCourseWithLessons inserts a student, a published course with the given
// number of published lessons, and an enrollment. Slugs and emails carry a
// random suffix so reruns against the same database do not collide.
func seedCourseWithLessons(t *testing.T, database *db.PostgresDB, lessons int) progressFixture {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	var f progressFixture
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, 'x', 'Test Student')
		RETURNING id`,
		fmt.Sprintf("student-%s@example.test", suffix)).Scan(&f.studentID)
	if err != nil {
		t.Fatalf("seeding student failed: %v", err)
	}

	err = database.Pool.QueryRow(ctx, `
		INSERT INTO courses (title, slug, is_published)
		VALUES ('Concurrency Course', $1, TRUE)
		RETURNING id`,
		"concurrency-"+suffix).Scan(&f.courseID)
	if err != nil {
		t.Fatalf("seeding course failed: %v", err)
	}

	for i := 1; i <= lessons; i++ {
		var lessonID uuid.UUID
		err = database.Pool.QueryRow(ctx, `
			INSERT INTO lessons (course_id, title, lesson_order)
			VALUES ($1, $2, $3)
			RETURNING id`,
			f.courseID, fmt.Sprintf("Lesson %d", i), i).Scan(&lessonID)
		if err != nil {
			t.Fatalf("seeding lesson %d failed: %v", i, err)
		}
		f.lessonIDs = append(f.lessonIDs, lessonID)
	}

	err = database.Pool.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id`,
		f.studentID, f.courseID).Scan(&f.enrollmentID)
	if err != nil {
		t.Fatalf("seeding enrollment failed: %v", err)
	}

	return f
}

func TestMarkLessonComplete_ConcurrentLastLesson(t *testing.T) {
	database := testDB(t)
	repo := NewProgressRepository(database)
	f := seedCourseWithLessons(t, database, 2)
	ctx := context.Background()

	if _, err := repo.MarkLessonComplete(ctx, f.enrollmentID, f.lessonIDs[0]); err != nil {
		t.Fatalf("completing first lesson failed: %v", err)
	}

	// Race several callers on the last remaining lesson. The enrollment row
	// lock serializes them; exactly one may observe NewlyCompleted.
	const callers = 8
	results := make([]MarkCompleteResult, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = repo.MarkLessonComplete(ctx, f.enrollmentID, f.lessonIDs[1])
		}(i)
	}
	wg.Wait()

	newly := 0
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if !results[i].CourseCompleted {
			t.Errorf("caller %d should observe the course as completed", i)
		}
		if results[i].NewlyCompleted {
			newly++
		}
	}
	if newly != 1 {
		t.Fatalf("expected exactly one caller to complete the enrollment, got %d", newly)
	}

	var completedAt *time.Time
	err := database.Pool.QueryRow(ctx,
		`SELECT completed_at FROM enrollments WHERE id = $1`, f.enrollmentID).Scan(&completedAt)
	if err != nil {
		t.Fatalf("loading enrollment failed: %v", err)
	}
	if completedAt == nil {
		t.Fatal("enrollment completed_at was never stamped")
	}

	// Completing again keeps the original timestamp.
	if _, err := repo.MarkLessonComplete(ctx, f.enrollmentID, f.lessonIDs[1]); err != nil {
		t.Fatalf("re-completing lesson failed: %v", err)
	}
	var after *time.Time
	err = database.Pool.QueryRow(ctx,
		`SELECT completed_at FROM enrollments WHERE id = $1`, f.enrollmentID).Scan(&after)
	if err != nil {
		t.Fatalf("reloading enrollment failed: %v", err)
	}
	if after == nil || !after.Equal(*completedAt) {
		t.Fatalf("enrollment completion timestamp changed: %v vs %v", completedAt, after)
	}
}

func TestMarkLessonComplete_LessonFromAnotherCourse(t *testing.T) {
	database := testDB(t)
	repo := NewProgressRepository(database)
	enrolled := seedCourseWithLessons(t, database, 1)
	other := seedCourseWithLessons(t, database, 1)

	_, err := repo.MarkLessonComplete(context.Background(), enrolled.enrollmentID, other.lessonIDs[0])
	if !errors.Is(err, apperrors.ErrLessonNotInCourse) {
		t.Fatalf("expected ErrLessonNotInCourse, got %v", err)
	}
}

func TestEnrollmentCreate_MapsForeignKeyViolations(t *testing.T) {
	database := testDB(t)
	repo := NewEnrollmentRepository(database)
	f := seedCourseWithLessons(t, database, 1)
	ctx := context.Background()

	_, _, err := repo.Create(ctx, uuid.New(), f.courseID)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("unknown student: expected ErrUserNotFound, got %v", err)
	}

	_, _, err = repo.Create(ctx, f.studentID, uuid.New())
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("unknown course: expected ErrCourseNotFound, got %v", err)
	}
}
