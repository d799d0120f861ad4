package models

import "time"

// Category is a simple named grouping for tasks. It carries no business
// rules beyond existence lookup by id at task-validation time.
type Category struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryFilter struct {
	UserID *int64
}
