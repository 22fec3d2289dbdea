package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(ctx, err)

	var body dto.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error response failed: %v", err)
	}
	return recorder.Code, body
}

func TestHandleAPIError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound},
		{"lesson not found", apperrors.ErrLessonNotFound, http.StatusNotFound},
		{"lesson outside the course", apperrors.ErrLessonNotInCourse, http.StatusNotFound},
		{"enrollment not found", apperrors.ErrEnrollmentNotFound, http.StatusNotFound},
		{"wrapped lesson mismatch", fmt.Errorf("completing lesson: %w", apperrors.ErrLessonNotInCourse), http.StatusNotFound},
		{"slug conflict", apperrors.ErrCourseSlugExists, http.StatusConflict},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"validation failure", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"unknown error", fmt.Errorf("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body.Error.Code == "" {
				t.Error("error response is missing a code")
			}
		})
	}
}

func TestHandleAPIError_HidesInternalDetails(t *testing.T) {
	status, body := handleError(t, fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"))

	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", status, http.StatusInternalServerError)
	}
	if body.Error.Message != "Internal server error" {
		t.Fatalf("internal error details leaked to the client: %q", body.Error.Message)
	}
}
