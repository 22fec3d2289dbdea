package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

type fakeLessons struct {
	byID map[uuid.UUID]*models.Lesson
}

func newFakeLessons() *fakeLessons {
	return &fakeLessons{byID: make(map[uuid.UUID]*models.Lesson)}
}

func (f *fakeLessons) add(courseID uuid.UUID, order int) *models.Lesson {
	lesson := &models.Lesson{
		ID:          uuid.New(),
		CourseID:    courseID,
		Title:       fmt.Sprintf("Lesson %d", order),
		Order:       order,
		IsPublished: true,
	}
	f.byID[lesson.ID] = lesson
	return lesson
}

func (f *fakeLessons) GetByID(_ context.Context, id uuid.UUID) (*models.Lesson, error) {
	if lesson, ok := f.byID[id]; ok {
		return lesson, nil
	}
	return nil, apperrors.ErrLessonNotFound
}

func (f *fakeLessons) NextAfter(_ context.Context, courseID uuid.UUID, order int) (*models.Lesson, error) {
	var next *models.Lesson
	for _, lesson := range f.byID {
		if lesson.CourseID != courseID || lesson.Order <= order {
			continue
		}
		if next == nil || lesson.Order < next.Order {
			next = lesson
		}
	}
	if next == nil {
		return nil, apperrors.ErrLessonNotFound
	}
	return next, nil
}

type progressKey struct {
	enrollment uuid.UUID
	lesson     uuid.UUID
}

// fakeProgress mirrors the transactional completion semantics of the real
// repository over the in-memory enrollment and lesson fakes.
type fakeProgress struct {
	enrollments *fakeEnrollments
	lessons     *fakeLessons
	rows        map[progressKey]*models.LessonProgress
}

func newFakeProgress(enrollments *fakeEnrollments, lessons *fakeLessons) *fakeProgress {
	return &fakeProgress{
		enrollments: enrollments,
		lessons:     lessons,
		rows:        make(map[progressKey]*models.LessonProgress),
	}
}

func (f *fakeProgress) row(enrollmentID, lessonID uuid.UUID) *models.LessonProgress {
	k := progressKey{enrollmentID, lessonID}
	if row, ok := f.rows[k]; ok {
		return row
	}
	now := time.Now()
	row := &models.LessonProgress{
		ID:           uuid.New(),
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
		StartedAt:    now,
		LastAccessed: now,
	}
	f.rows[k] = row
	return row
}

func (f *fakeProgress) RecordView(_ context.Context, enrollmentID, lessonID uuid.UUID, watchTime int) (*models.LessonProgress, error) {
	row := f.row(enrollmentID, lessonID)
	row.WatchTime += watchTime
	row.LastAccessed = time.Now()
	return row, nil
}

func (f *fakeProgress) ListByEnrollment(_ context.Context, enrollmentID uuid.UUID) ([]*models.LessonProgress, error) {
	var out []*models.LessonProgress
	for _, row := range f.rows {
		if row.EnrollmentID == enrollmentID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeProgress) MarkLessonComplete(_ context.Context, enrollmentID, lessonID uuid.UUID) (repositories.MarkCompleteResult, error) {
	enrollment := f.enrollments.byID(enrollmentID)
	if enrollment == nil {
		return repositories.MarkCompleteResult{}, apperrors.ErrEnrollmentNotFound
	}
	lesson, ok := f.lessons.byID[lessonID]
	if !ok || lesson.CourseID != enrollment.CourseID {
		return repositories.MarkCompleteResult{}, apperrors.ErrLessonNotInCourse
	}

	row := f.row(enrollmentID, lessonID)
	if !row.IsCompleted {
		now := time.Now()
		row.IsCompleted = true
		row.CompletedAt = &now
	}

	total, completed := 0, 0
	for _, l := range f.lessons.byID {
		if l.CourseID != enrollment.CourseID || !l.IsPublished {
			continue
		}
		total++
		if r, ok := f.rows[progressKey{enrollmentID, l.ID}]; ok && r.IsCompleted {
			completed++
		}
	}
	f.enrollments.counts[enrollmentID] = [2]int{total, completed}

	result := repositories.MarkCompleteResult{CourseCompleted: total > 0 && completed == total}
	if result.CourseCompleted && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
		result.NewlyCompleted = true
	}
	return result, nil
}

func newProgressFixture() (*fakeEnrollments, *fakeCourses, *fakeLessons, ProgressService) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	lessons := newFakeLessons()
	progress := newFakeProgress(enrollments, lessons)
	svc := NewProgressService(progress, enrollments, lessons, courses, zerolog.Nop())
	return enrollments, courses, lessons, svc
}

func TestCompleteLesson_ReturnsNextLessonURL(t *testing.T) {
	enrollments, courses, lessons, svc := newProgressFixture()
	courseID := courses.add("go-for-beginners", true)
	first := lessons.add(courseID, 1)
	second := lessons.add(courseID, 2)
	lessons.add(courseID, 3)
	studentID := uuid.New()
	if _, _, err := enrollments.Create(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	response, err := svc.CompleteLesson(context.Background(), studentID, first.ID)
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	if !response.Success {
		t.Fatalf("expected success=true")
	}
	if response.CourseCompleted {
		t.Fatalf("course should not be completed after one of three lessons")
	}
	want := fmt.Sprintf("/courses/go-for-beginners/lessons/%s", second.ID)
	if response.NextLessonURL == nil || *response.NextLessonURL != want {
		t.Fatalf("expected next lesson URL %q, got %v", want, response.NextLessonURL)
	}
}

func TestCompleteLesson_LastLessonCompletesCourse(t *testing.T) {
	enrollments, courses, lessons, svc := newProgressFixture()
	courseID := courses.add("go-for-beginners", true)
	first := lessons.add(courseID, 1)
	last := lessons.add(courseID, 2)
	studentID := uuid.New()
	enrollment, _, err := enrollments.Create(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if _, err := svc.CompleteLesson(context.Background(), studentID, first.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	response, err := svc.CompleteLesson(context.Background(), studentID, last.ID)
	if err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	if !response.CourseCompleted {
		t.Fatalf("expected course_completed=true after the last lesson")
	}
	if response.NextLessonURL != nil {
		t.Fatalf("expected null next_lesson_url after the last lesson, got %q", *response.NextLessonURL)
	}
	if enrollment.CompletedAt == nil {
		t.Fatalf("expected enrollment completion timestamp to be set")
	}
}

func TestCompleteLesson_CompletionTimestampIsStable(t *testing.T) {
	enrollments, courses, lessons, svc := newProgressFixture()
	courseID := courses.add("go-for-beginners", true)
	only := lessons.add(courseID, 1)
	studentID := uuid.New()
	enrollment, _, err := enrollments.Create(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if _, err := svc.CompleteLesson(context.Background(), studentID, only.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}
	firstStamp := *enrollment.CompletedAt

	response, err := svc.CompleteLesson(context.Background(), studentID, only.ID)
	if err != nil {
		t.Fatalf("repeated CompleteLesson failed: %v", err)
	}
	if !response.CourseCompleted {
		t.Fatalf("expected course_completed=true on repeat completion")
	}
	if !enrollment.CompletedAt.Equal(firstStamp) {
		t.Fatalf("completion timestamp moved: %v vs %v", firstStamp, *enrollment.CompletedAt)
	}
}

func TestCompleteLesson_AutoEnrollsStudent(t *testing.T) {
	enrollments, courses, lessons, svc := newProgressFixture()
	courseID := courses.add("go-for-beginners", true)
	first := lessons.add(courseID, 1)
	lessons.add(courseID, 2)
	studentID := uuid.New()

	if _, err := svc.CompleteLesson(context.Background(), studentID, first.ID); err != nil {
		t.Fatalf("CompleteLesson failed: %v", err)
	}

	if _, err := enrollments.GetByStudentAndCourse(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("expected an enrollment to be created on the fly, got %v", err)
	}
}

func TestCompleteLesson_UnknownLesson(t *testing.T) {
	_, _, _, svc := newProgressFixture()

	_, err := svc.CompleteLesson(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperrors.ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestRecordLessonView_RejectsNegativeWatchTime(t *testing.T) {
	_, _, _, svc := newProgressFixture()

	_, err := svc.RecordLessonView(context.Background(), uuid.New(), uuid.New(), -5)
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRecordLessonView_RequiresEnrollment(t *testing.T) {
	_, courses, lessons, svc := newProgressFixture()
	courseID := courses.add("go-for-beginners", true)
	lesson := lessons.add(courseID, 1)

	_, err := svc.RecordLessonView(context.Background(), uuid.New(), lesson.ID, 30)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}
}

func TestRecordLessonView_AccumulatesWatchTime(t *testing.T) {
	enrollments, courses, lessons, svc := newProgressFixture()
	courseID := courses.add("go-for-beginners", true)
	lesson := lessons.add(courseID, 1)
	studentID := uuid.New()
	if _, _, err := enrollments.Create(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	if _, err := svc.RecordLessonView(context.Background(), studentID, lesson.ID, 30); err != nil {
		t.Fatalf("RecordLessonView failed: %v", err)
	}
	progress, err := svc.RecordLessonView(context.Background(), studentID, lesson.ID, 45)
	if err != nil {
		t.Fatalf("RecordLessonView failed: %v", err)
	}

	if progress.WatchTime != 75 {
		t.Fatalf("expected accumulated watch time 75, got %d", progress.WatchTime)
	}
	if progress.IsCompleted {
		t.Fatalf("viewing alone must not complete a lesson")
	}
	if enrollments.touched != 2 {
		t.Fatalf("expected last_accessed to be touched twice, got %d", enrollments.touched)
	}
}

func TestGetCourseProgress_ZeroLessonCourse(t *testing.T) {
	enrollments, courses, _, svc := newProgressFixture()
	courseID := courses.add("empty-course", true)
	studentID := uuid.New()
	enrollment, _, err := enrollments.Create(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	response, err := svc.GetCourseProgress(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("GetCourseProgress failed: %v", err)
	}

	if response.Progress != 0 {
		t.Fatalf("a course with no lessons must report zero progress, got %v", response.Progress)
	}
	if response.Completed {
		t.Fatalf("a course with no lessons must never be completed")
	}
	if enrollment.CompletedAt != nil {
		t.Fatalf("zero-lesson course stamped the enrollment as completed")
	}
}
