package repositories

import (
	"strings"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ljcourses/backend/internal/app/models"
)

func conditionsToSql(t *testing.T, params ListCoursesParams) (string, []interface{}) {
	t.Helper()
	sql, args, err := squirrel.Select("COUNT(*)").From("courses c").
		LeftJoin("users u ON c.instructor_id = u.id").
		LeftJoin("categories cat ON c.category_id = cat.id").
		Where(listCoursesConditions(params)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		t.Fatalf("building SQL failed: %v", err)
	}
	return sql, args
}

func TestListCoursesConditions_InstructorFilter(t *testing.T) {
	instructorID := uuid.New()
	sql, args := conditionsToSql(t, ListCoursesParams{
		PublishedOnly: true,
		InstructorID:  &instructorID,
	})

	if !strings.Contains(sql, "c.instructor_id = ") {
		t.Fatalf("expected an instructor predicate, got: %s", sql)
	}
	found := false
	for _, arg := range args {
		if arg == instructorID {
			found = true
		}
	}
	if !found {
		t.Fatalf("instructor id not bound as an argument: %v", args)
	}
}

func TestListCoursesConditions_SearchCoversInstructorName(t *testing.T) {
	search := "hopper"
	sql, args := conditionsToSql(t, ListCoursesParams{Search: &search})

	for _, column := range []string{"c.title ILIKE", "c.description ILIKE", "u.full_name ILIKE"} {
		if !strings.Contains(sql, column) {
			t.Errorf("search should match %s, got: %s", column, sql)
		}
	}
	pattern := "%hopper%"
	matches := 0
	for _, arg := range args {
		if arg == pattern {
			matches++
		}
	}
	if matches != 3 {
		t.Fatalf("expected the pattern bound three times, got %d in %v", matches, args)
	}
}

func TestListCoursesConditions_CombinedFilters(t *testing.T) {
	slug := "programming"
	level := models.DifficultyBeginner
	sql, _ := conditionsToSql(t, ListCoursesParams{
		PublishedOnly: true,
		FeaturedOnly:  true,
		CategorySlug:  &slug,
		Difficulty:    &level,
	})

	for _, predicate := range []string{
		"c.is_published = ",
		"c.is_featured = ",
		"cat.slug = ",
		"c.difficulty_level = ",
	} {
		if !strings.Contains(sql, predicate) {
			t.Errorf("missing predicate %q in: %s", predicate, sql)
		}
	}
}
