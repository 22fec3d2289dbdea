package repositories

import (
	"github.com/ljcourses/backend/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	CategoryRepository   *CategoryRepository
	CourseRepository     *CourseRepository
	LessonRepository     *LessonRepository
	EnrollmentRepository *EnrollmentRepository
	ProgressRepository   *ProgressRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database.Pool),
		CategoryRepository:   NewCategoryRepository(database.Pool),
		CourseRepository:     NewCourseRepository(database.Pool),
		LessonRepository:     NewLessonRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database),
		ProgressRepository:   NewProgressRepository(database),
	}
}
