package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ljcourses/backend/internal/app/controllers"
	"github.com/ljcourses/backend/internal/app/models"
	"github.com/ljcourses/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	categoryController *controllers.CategoryController,
	courseController *controllers.CourseController,
	lessonController *controllers.LessonController,
	enrollmentController *controllers.EnrollmentController,
	progressController *controllers.ProgressController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// --- Public routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	api.GET("/categories", categoryController.GetCategories)
	api.GET("/courses", courseController.ListCourses)
	api.GET("/courses/:courseId", courseController.GetCourse)
	api.GET("/courses/:courseId/lessons", lessonController.ListLessons)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile
		users := authenticated.Group("/users/me")
		{
			users.GET("", userController.GetProfile)
			users.PUT("", userController.UpdateProfile)
			users.PUT("/password", userController.ChangePassword)
			users.GET("/stats", userController.GetStats)
		}

		// Lessons (viewing requires an account; listing stays public)
		authenticated.GET("/lessons/:lessonId", lessonController.GetLesson)
		authenticated.POST("/lessons/:lessonId/view", progressController.RecordLessonView)

		// Enrollments and progress
		authenticated.POST("/enrollments", enrollmentController.Enroll)
		authenticated.GET("/enrollments/:courseId", enrollmentController.GetEnrollmentProgress)
		authenticated.DELETE("/enrollments/:courseId", enrollmentController.Unenroll)
		authenticated.GET("/my-courses", enrollmentController.ListMyCourses)
		authenticated.GET("/completed-courses", enrollmentController.ListCompletedCourses)
		authenticated.GET("/courses/:courseId/progress", progressController.GetCourseProgress)
		authenticated.POST("/complete-lesson/:lesson_id", progressController.CompleteLesson)

		// Instructor and admin authoring routes
		authoring := authenticated.Group("")
		authoring.Use(authMiddleware.RoleRequired(models.RoleInstructor, models.RoleAdmin))
		{
			authoring.POST("/courses", courseController.CreateCourse)
			authoring.PUT("/courses/:courseId", courseController.UpdateCourse)
			authoring.POST("/courses/:courseId/publish", courseController.PublishCourse)
			authoring.DELETE("/courses/:courseId", courseController.DeleteCourse)

			authoring.POST("/courses/:courseId/lessons", lessonController.AddLesson)
			authoring.PUT("/lessons/:lessonId", lessonController.UpdateLesson)
			authoring.DELETE("/lessons/:lessonId", lessonController.DeleteLesson)
		}

		// Admin-only catalog management
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/categories", categoryController.CreateCategory)
			admin.PUT("/categories/:id", categoryController.UpdateCategory)
			admin.DELETE("/categories/:id", categoryController.DeleteCategory)
		}
	}
}
