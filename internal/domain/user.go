package domain

import "time"

// User represents an operator-managed account
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username" validate:"required,min=1,max=50"`
	Email     string    `json:"email" db:"email" validate:"required,email,max=255"`
	FullName  string    `json:"full_name" db:"full_name" validate:"max=255"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
