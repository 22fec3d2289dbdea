package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Slug pattern used for course and category slugs
	SlugPattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

	// Hex color pattern used for category colors (e.g. #FF6B6B)
	HexColorPattern = `^#[0-9A-Fa-f]{6}$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email    *regexp.Regexp
	Slug     *regexp.Regexp
	HexColor *regexp.Regexp
}{
	Email:    regexp.MustCompile(EmailPattern),
	Slug:     regexp.MustCompile(SlugPattern),
	HexColor: regexp.MustCompile(HexColorPattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidSlug reports whether the value is a lowercase dash-separated slug.
func IsValidSlug(value string) bool {
	return CompiledPatterns.Slug.MatchString(value)
}

// IsValidHexColor reports whether the value is a #RRGGBB color code.
func IsValidHexColor(value string) bool {
	return CompiledPatterns.HexColor.MatchString(value)
}

// IsValidName reports whether a display name has an acceptable length.
func IsValidName(value string) bool {
	return len(value) >= NameMinLength && len(value) <= NameMaxLength
}

// IsValidPassword reports whether a password meets the minimum length.
func IsValidPassword(value string) bool {
	return len(value) >= PasswordMinLength
}
