package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a course category used for catalog filtering.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	Icon        *string   `json:"icon,omitempty" db:"icon"`               // Material icon name
	Color       *string   `json:"color,omitempty" db:"color"`             // Hex color code
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
