package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestIsDuplicateConstraintError(t *testing.T) {
	err := pgError("23505", "uq_enrollments_student_course")

	if !IsDuplicateConstraintError(err, "uq_enrollments_student_course") {
		t.Error("expected a match for the named unique constraint")
	}
	if IsDuplicateConstraintError(err, "uq_courses_slug") {
		t.Error("must not match a different constraint name")
	}
	if IsDuplicateConstraintError(errors.New("plain error"), "uq_enrollments_student_course") {
		t.Error("must not match a non-pg error")
	}
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			"missing student",
			pgError("23503", "fk_enrollments_student"),
			"fk_enrollments_student",
			true,
		},
		{
			"missing course does not match the student constraint",
			pgError("23503", "fk_enrollments_course"),
			"fk_enrollments_student",
			false,
		},
		{
			"wrapped error still matches",
			fmt.Errorf("error scanning enrollment: %w", pgError("23503", "fk_enrollments_course")),
			"fk_enrollments_course",
			true,
		},
		{
			"unique violation is not a foreign key violation",
			pgError("23505", "fk_enrollments_course"),
			"fk_enrollments_course",
			false,
		},
		{
			"plain error",
			errors.New("connection refused"),
			"fk_enrollments_course",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsForeignKeyConstraintError(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsForeignKeyConstraintError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(pgError("23503", "fk_lessons_course")) {
		t.Error("expected a match for code 23503")
	}
	if IsForeignKeyViolation(pgError("23505", "uq_courses_slug")) {
		t.Error("must not match a unique violation")
	}
}
