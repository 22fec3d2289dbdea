package models

import "fmt"

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "student"
	RoleInstructor RoleType = "instructor"
	RoleAdmin      RoleType = "admin"
)

// ParseRoleType converts a raw string into a RoleType.
// Unknown values are rejected at the boundary instead of being stored as-is.
func ParseRoleType(s string) (RoleType, error) {
	switch RoleType(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return RoleType(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DifficultyLevel represents the difficulty rating of a course
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "Beginner"
	DifficultyIntermediate DifficultyLevel = "Intermediate"
	DifficultyAdvanced     DifficultyLevel = "Advanced"
)

// ParseDifficultyLevel converts a raw string into a DifficultyLevel.
func ParseDifficultyLevel(s string) (DifficultyLevel, error) {
	switch DifficultyLevel(s) {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return DifficultyLevel(s), nil
	}
	return "", fmt.Errorf("unknown difficulty level %q", s)
}
