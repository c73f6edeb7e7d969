package domain

import "time"

// UndetectedBrandID marks a source record whose brand could not be
// detected. Such records are never persisted.
const UndetectedBrandID int64 = -1

// Brand represents a product brand, optionally attached to a category
type Brand struct {
	ID         int64      `json:"id" db:"id"`
	Slug       string     `json:"slug" db:"slug"`
	Name1      string     `json:"name1" db:"name1"`
	Name2      string     `json:"name2" db:"name2"`
	CategoryID *int64     `json:"category_id,omitempty" db:"category_id"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}
