package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

// In-memory fakes standing in for the pgx-backed repositories. They implement
// the same store interfaces the services are built against.

type enrollmentKey struct {
	student uuid.UUID
	course  uuid.UUID
}

type fakeEnrollments struct {
	byKey   map[enrollmentKey]*models.Enrollment
	counts  map[uuid.UUID][2]int // enrollmentID -> {total, completed}
	touched int
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{
		byKey:  make(map[enrollmentKey]*models.Enrollment),
		counts: make(map[uuid.UUID][2]int),
	}
}

func (f *fakeEnrollments) Create(_ context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, bool, error) {
	k := enrollmentKey{studentID, courseID}
	if existing, ok := f.byKey[k]; ok {
		return existing, false, nil
	}
	now := time.Now()
	enrollment := &models.Enrollment{
		ID:           uuid.New(),
		StudentID:    studentID,
		CourseID:     courseID,
		IsActive:     true,
		EnrolledAt:   now,
		LastAccessed: now,
	}
	f.byKey[k] = enrollment
	return enrollment, true, nil
}

func (f *fakeEnrollments) GetByStudentAndCourse(_ context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	if enrollment, ok := f.byKey[enrollmentKey{studentID, courseID}]; ok {
		return enrollment, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollments) byID(id uuid.UUID) *models.Enrollment {
	for _, enrollment := range f.byKey {
		if enrollment.ID == id {
			return enrollment
		}
	}
	return nil
}

func (f *fakeEnrollments) ListActiveByStudent(_ context.Context, studentID uuid.UUID) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, enrollment := range f.byKey {
		if enrollment.StudentID == studentID && enrollment.CompletedAt == nil {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (f *fakeEnrollments) ListCompletedByStudent(_ context.Context, studentID uuid.UUID) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, enrollment := range f.byKey {
		if enrollment.StudentID == studentID && enrollment.CompletedAt != nil {
			out = append(out, enrollment)
		}
	}
	return out, nil
}

func (f *fakeEnrollments) ProgressCounts(_ context.Context, enrollmentID uuid.UUID) (int, int, error) {
	c := f.counts[enrollmentID]
	return c[0], c[1], nil
}

func (f *fakeEnrollments) TouchLastAccessed(_ context.Context, id uuid.UUID) error {
	f.touched++
	if enrollment := f.byID(id); enrollment != nil {
		enrollment.LastAccessed = time.Now()
	}
	return nil
}

func (f *fakeEnrollments) Delete(_ context.Context, id uuid.UUID) error {
	for k, enrollment := range f.byKey {
		if enrollment.ID == id {
			delete(f.byKey, k)
			delete(f.counts, id)
			return nil
		}
	}
	return apperrors.ErrEnrollmentNotFound
}

type fakeCourses struct {
	byID map[uuid.UUID]*repositories.CourseDetails
}

func newFakeCourses() *fakeCourses {
	return &fakeCourses{byID: make(map[uuid.UUID]*repositories.CourseDetails)}
}

func (f *fakeCourses) add(slug string, published bool) uuid.UUID {
	id := uuid.New()
	f.byID[id] = &repositories.CourseDetails{
		Course: models.Course{ID: id, Title: slug, Slug: slug, IsPublished: published},
	}
	return id
}

func (f *fakeCourses) GetByID(_ context.Context, id uuid.UUID) (*repositories.CourseDetails, error) {
	if details, ok := f.byID[id]; ok {
		return details, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func TestEnroll_IsIdempotent(t *testing.T) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	courseID := courses.add("go-for-beginners", true)
	svc := NewEnrollmentService(enrollments, courses, zerolog.Nop())
	studentID := uuid.New()

	first, err := svc.Enroll(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	second, err := svc.Enroll(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("second enroll failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected the same enrollment, got %s and %s", first.ID, second.ID)
	}
	if !first.EnrolledAt.Equal(second.EnrolledAt) {
		t.Fatalf("enrollment date changed on re-enroll: %v vs %v", first.EnrolledAt, second.EnrolledAt)
	}
}

func TestEnroll_UnpublishedCourseIsInvisible(t *testing.T) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	courseID := courses.add("draft-course", false)
	svc := NewEnrollmentService(enrollments, courses, zerolog.Nop())

	_, err := svc.Enroll(context.Background(), uuid.New(), courseID)
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnroll_UnknownCourse(t *testing.T) {
	svc := NewEnrollmentService(newFakeEnrollments(), newFakeCourses(), zerolog.Nop())

	_, err := svc.Enroll(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestUnenroll_RemovesEnrollment(t *testing.T) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	courseID := courses.add("go-for-beginners", true)
	svc := NewEnrollmentService(enrollments, courses, zerolog.Nop())
	studentID := uuid.New()

	if _, err := svc.Enroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if err := svc.Unenroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}

	_, err := svc.GetEnrollmentProgress(context.Background(), studentID, courseID)
	if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		t.Fatalf("expected ErrEnrollmentNotFound after unenroll, got %v", err)
	}
}

func TestUnenroll_WithoutEnrollmentIsNoOp(t *testing.T) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	courseID := courses.add("go-for-beginners", true)
	svc := NewEnrollmentService(enrollments, courses, zerolog.Nop())
	studentID := uuid.New()

	if err := svc.Unenroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("unenroll without enrollment should succeed, got %v", err)
	}

	// Unenrolling twice in a row stays a success as well.
	if _, err := svc.Enroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if err := svc.Unenroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("unenroll failed: %v", err)
	}
	if err := svc.Unenroll(context.Background(), studentID, courseID); err != nil {
		t.Fatalf("repeated unenroll should succeed, got %v", err)
	}
}

func TestGetEnrollmentProgress_ComputesFraction(t *testing.T) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	courseID := courses.add("go-for-beginners", true)
	svc := NewEnrollmentService(enrollments, courses, zerolog.Nop())
	studentID := uuid.New()

	enrollment, err := svc.Enroll(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	enrollments.counts[enrollment.ID] = [2]int{4, 1}

	response, err := svc.GetEnrollmentProgress(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("GetEnrollmentProgress failed: %v", err)
	}
	if response.Progress != 0.25 {
		t.Fatalf("expected progress 0.25, got %v", response.Progress)
	}
	if response.TotalLessons != 4 || response.DoneLessons != 1 {
		t.Fatalf("unexpected counters: total=%d done=%d", response.TotalLessons, response.DoneLessons)
	}
}

func TestListMyCourses_SplitsByCompletion(t *testing.T) {
	enrollments := newFakeEnrollments()
	courses := newFakeCourses()
	activeID := courses.add("in-progress", true)
	doneID := courses.add("finished", true)
	svc := NewEnrollmentService(enrollments, courses, zerolog.Nop())
	studentID := uuid.New()

	if _, err := svc.Enroll(context.Background(), studentID, activeID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	finished, err := svc.Enroll(context.Background(), studentID, doneID)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	now := time.Now()
	finished.CompletedAt = &now

	active, err := svc.ListMyCourses(context.Background(), studentID)
	if err != nil {
		t.Fatalf("ListMyCourses failed: %v", err)
	}
	if len(active) != 1 || active[0].CourseID != activeID {
		t.Fatalf("expected one active enrollment for %s, got %+v", activeID, active)
	}

	completed, err := svc.ListCompletedCourses(context.Background(), studentID)
	if err != nil {
		t.Fatalf("ListCompletedCourses failed: %v", err)
	}
	if len(completed) != 1 || completed[0].CourseID != doneID {
		t.Fatalf("expected one completed enrollment for %s, got %+v", doneID, completed)
	}
}
