package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ljcourses/backend/internal/app/models/dto"
	"github.com/ljcourses/backend/internal/app/services"
	"github.com/ljcourses/backend/internal/middleware"
)

// LessonController handles lesson authoring operations
type LessonController struct {
	lessonService services.LessonService
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService) *LessonController {
	return &LessonController{
		lessonService: lessonService,
	}
}

// ListLessons returns the ordered lessons of a course
// @Summary List course lessons
// @Tags lessons
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonListResponse} "Lessons retrieved"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{courseId}/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	lessons, err := c.lessonService.ListLessons(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.LessonListResponse{Lessons: lessons}, ""))
}

// GetLesson returns one lesson
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson retrieved"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{lessonId} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lessonID, ok := parseUUIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromLesson(lesson), ""))
}

// AddLesson appends a lesson to a course
// @Summary Add a lesson to a course
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.CreateLessonRequest true "Lesson information"
// @Success 201 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson created"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson data"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 409 {object} dto.ErrorResponse "Order already taken"
// @Router /courses/{courseId}/lessons [post]
func (c *LessonController) AddLesson(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	courseID, ok := parseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	lesson, err := c.lessonService.AddLesson(ctx, actor, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromLesson(lesson), "Lesson created"))
}

// UpdateLesson updates a lesson
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Lesson fields"
// @Success 200 {object} dto.APIResponse{data=dto.LessonResponse} "Lesson updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid lesson data"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{lessonId} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	lessonID, ok := parseUUIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx, actor, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromLesson(lesson), "Lesson updated"))
}

// DeleteLesson removes a lesson
// @Summary Delete a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.APIResponse "Lesson deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the course owner"
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{lessonId} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	lessonID, ok := parseUUIDParam(ctx, "lessonId")
	if !ok {
		return
	}

	if err := c.lessonService.DeleteLesson(ctx, actor, lessonID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Lesson deleted"))
}
