package repository

import (
	"context"

	"finlite/internal/domain"
)

// ClientRepository exposes persistence operations for Client entities.
// Every read and write is scoped to the owning user.
type ClientRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, client *domain.Client) (int64, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id, userID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Client, error)
}
