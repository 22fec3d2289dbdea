package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs(t *testing.T) {
	wrapped := fmt.Errorf("loading course: %w", ErrCourseNotFound)

	tests := []struct {
		name    string
		err     error
		target  error
		errList []error
		want    bool
	}{
		{"direct match", ErrCourseNotFound, ErrCourseNotFound, nil, true},
		{"wrapped match", wrapped, ErrCourseNotFound, nil, true},
		{"match in list", ErrLessonNotFound, ErrCourseNotFound, []error{ErrLessonNotFound}, true},
		{"no match", ErrConflict, ErrCourseNotFound, []error{ErrLessonNotFound}, false},
		{"nil error", nil, ErrCourseNotFound, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.target, tt.errList...); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrCourseNotFound, ErrLessonNotFound) {
		t.Error("course and lesson sentinels must not match each other")
	}
	if errors.Is(ErrEnrollmentNotFound, ErrResourceNotFound) {
		t.Error("enrollment sentinel must not match the generic resource sentinel")
	}
}
