package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appModels "github.com/ljcourses/backend/internal/app/models"
	appRepos "github.com/ljcourses/backend/internal/app/repositories"
	"github.com/ljcourses/backend/internal/db"
	"github.com/ljcourses/backend/internal/pkg/apperrors"
	pkgAuth "github.com/ljcourses/backend/internal/pkg/auth"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// CreateDefaultData seeds the catalog with default categories, demo accounts
// and a starter course so a fresh database is immediately usable.
func CreateDefaultData(database *db.PostgresDB, lgr zerolog.Logger) error {
	ctx := context.Background()
	repos := appRepos.NewRepositories(database)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Categories --- //
	categories := []appModels.Category{
		{Name: "Programming", Slug: "programming", Description: strPtr("Software development and programming languages"), Icon: strPtr("code"), Color: strPtr("#3B82F6")},
		{Name: "Data Science", Slug: "data-science", Description: strPtr("Statistics, machine learning and data analysis"), Icon: strPtr("analytics"), Color: strPtr("#10B981")},
		{Name: "Design", Slug: "design", Description: strPtr("UI, UX and visual design"), Icon: strPtr("palette"), Color: strPtr("#F59E0B")},
	}
	for i := range categories {
		if err := repos.CategoryRepository.Create(ctx, &categories[i]); err != nil {
			if !errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
				lgr.Error().Err(err).Str("category", categories[i].Name).Msg("Error creating default category")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	programmingID, err := categoryID(ctx, repos, "programming")
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// --- Demo accounts --- //
	adminID, err := ensureUser(ctx, repos, lgr, appModels.User{
		Email:    "admin@ljcourses.io",
		FullName: "Platform Administrator",
		Role:     appModels.RoleAdmin,
		IsActive: true,
	}, "Admin123!")
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	_ = adminID

	instructorID, err := ensureUser(ctx, repos, lgr, appModels.User{
		Email:    "instructor@ljcourses.io",
		FullName: "Ada Hopper",
		Role:     appModels.RoleInstructor,
		Bio:      strPtr("Teaches introductory programming courses."),
		IsActive: true,
	}, "Instructor123!")
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	_, err = ensureUser(ctx, repos, lgr, appModels.User{
		Email:    "student@ljcourses.io",
		FullName: "Sam Student",
		Role:     appModels.RoleStudent,
		Major:    strPtr("Computer Science"),
		IsActive: true,
	}, "Student123!")
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// --- Starter course with lessons --- //
	if instructorID != uuid.Nil {
		if err := ensureStarterCourse(ctx, repos, lgr, instructorID, programmingID); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func categoryID(ctx context.Context, repos *appRepos.Repositories, slug string) (*uuid.UUID, error) {
	category, err := repos.CategoryRepository.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up seeded category %q: %w", slug, err)
	}
	return &category.ID, nil
}

// ensureUser creates the user if the email is unused and returns the user ID
// either way.
func ensureUser(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger, user appModels.User, password string) (uuid.UUID, error) {
	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password for %s: %w", user.Email, err)
	}
	user.PasswordHash = hashed

	if err := repos.UserRepository.Create(ctx, &user); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("email", user.Email).Msg("Error creating default user")
			return uuid.Nil, err
		}
		existing, err := repos.UserRepository.GetByEmail(ctx, user.Email)
		if err != nil {
			return uuid.Nil, err
		}
		return existing.ID, nil
	}

	lgr.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("Default user created")
	return user.ID, nil
}

func ensureStarterCourse(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger, instructorID uuid.UUID, categoryID *uuid.UUID) error {
	const slug = "go-for-beginners"

	course := &appModels.Course{
		Title:           "Go for Beginners",
		Slug:            slug,
		Description:     strPtr("A hands-on introduction to the Go programming language."),
		DurationHours:   intPtr(6),
		DifficultyLevel: difficultyPtr(appModels.DifficultyBeginner),
		InstructorID:    &instructorID,
		CategoryID:      categoryID,
	}

	if err := repos.CourseRepository.Create(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseSlugExists) {
			return nil
		}
		lgr.Error().Err(err).Str("slug", slug).Msg("Error creating starter course")
		return err
	}

	lessons := []appModels.Lesson{
		{Title: "Getting Started", Description: strPtr("Install the toolchain and run your first program."), Order: 1, IsFree: true, VideoDuration: intPtr(540)},
		{Title: "Types and Functions", Description: strPtr("Basic types, functions and error handling."), Order: 2, VideoDuration: intPtr(720)},
		{Title: "Goroutines and Channels", Description: strPtr("Concurrency primitives in practice."), Order: 3, VideoDuration: intPtr(900)},
	}
	for i := range lessons {
		lessons[i].CourseID = course.ID
		if err := repos.LessonRepository.Create(ctx, &lessons[i]); err != nil && !errors.Is(err, apperrors.ErrLessonOrderConflict) {
			lgr.Error().Err(err).Str("lesson", lessons[i].Title).Msg("Error creating starter lesson")
			return err
		}
	}

	if err := repos.CourseRepository.SetPublished(ctx, course.ID, true); err != nil {
		lgr.Error().Err(err).Str("slug", slug).Msg("Error publishing starter course")
		return err
	}

	lgr.Info().Str("slug", slug).Msg("Starter course created")
	return nil
}

func difficultyPtr(level appModels.DifficultyLevel) *appModels.DifficultyLevel {
	return &level
}
