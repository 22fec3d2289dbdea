package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/services"
	"github.com/ljcourses/backend/internal/middleware"
)

// ProgressController handles lesson view and completion operations
type ProgressController struct {
	progressService services.ProgressService
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService services.ProgressService) *ProgressController {
	return &ProgressController{
		progressService: progressService,
	}
}

// RecordLessonView records a lesson view heartbeat
// @Summary Record a lesson view
// @Description Creates the progress row on first view and accumulates watch time on later views
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Param request body dto.RecordViewRequest false "Watch time in seconds"
// @Success 200 {object} dto.APIResponse{data=dto.LessonProgressResponse} "View recorded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lesson or enrollment not found"
// @Router /lessons/{lessonId}/view [post]
func (c *ProgressController) RecordLessonView(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	lessonID, ok := parseUUIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	// The body is optional; an empty view still creates the progress row.
	var req dto.RecordViewRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
			return
		}
	}

	progress, err := c.progressService.RecordLessonView(ctx, userID, lessonID, req.WatchTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromLessonProgress(progress), "View recorded"))
}

// CompleteLesson marks a lesson as completed
// @Summary Complete a lesson
// @Description Marks the lesson completed for the student, enrolling them first if needed. Returns the next lesson URL, or null after the last lesson.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param lesson_id path string true "Lesson ID"
// @Success 200 {object} dto.CompleteLessonResponse "Lesson completed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /complete-lesson/{lesson_id} [post]
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	lessonID, ok := parseUUIDParam(ctx, "lesson_id")
	if !ok {
		return
	}

	response, err := c.progressService.CompleteLesson(ctx, userID, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// This endpoint keeps its flat legacy shape; clients depend on the
	// top-level success and next_lesson_url keys.
	ctx.JSON(http.StatusOK, response)
}

// GetCourseProgress returns per-lesson completion for a course
// @Summary Get my per-lesson progress in a course
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseProgressResponse} "Progress retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /courses/{courseId}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	courseID, ok := parseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	response, err := c.progressService.GetCourseProgress(ctx, userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response, ""))
}
