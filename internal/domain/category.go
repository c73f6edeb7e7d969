package domain

import (
	"sort"
	"time"
)

// Category is a node in the category forest. Its parent is referenced by
// identifier only; children are looked up by querying for ParentID.
type Category struct {
	ID                int64      `json:"id" db:"id"`
	Title             string     `json:"title" db:"title"`
	EnglishTitle      *string    `json:"english_title,omitempty" db:"english_title"`
	Description       *string    `json:"description,omitempty" db:"description"`
	Image             *string    `json:"image,omitempty" db:"image"`
	Icon              *string    `json:"icon,omitempty" db:"icon"`
	Brand             *string    `json:"brand,omitempty" db:"brand"`
	ParentID          *int64     `json:"category_parent_id,omitempty" db:"category_parent_id"`
	Order             int        `json:"order" db:"display_order"`
	Visible           bool       `json:"visible" db:"visible"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	FilterableByBrand bool       `json:"filterable_by_brand" db:"filterable_by_brand"`
	BackgroundColor   *string    `json:"background_color,omitempty" db:"background_color"`
	AbsoluteURL       *string    `json:"absolute_url,omitempty" db:"absolute_url"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// SortSiblings orders categories by display order, then by identifier.
func SortSiblings(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].Order != categories[j].Order {
			return categories[i].Order < categories[j].Order
		}
		return categories[i].ID < categories[j].ID
	})
}
