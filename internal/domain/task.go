package domain

import "time"

// Task is a user to-do item.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      string
	StartDate   string
	DueDate     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
