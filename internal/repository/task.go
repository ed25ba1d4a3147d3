package repository

import (
	"context"

	"finlite/internal/domain"
)

// TaskRepository exposes persistence operations for user tasks.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
}
