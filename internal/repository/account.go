package repository

import (
	"context"

	"finlite/internal/domain"
)

// AccountRepository exposes persistence operations for Account aggregates.
type AccountRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, account *domain.Account) (int64, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id, userID int64) error
	Get(ctx context.Context, id, userID int64) (*domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
	// Pay flips an unpaid account to paid and applies its amount to the linked
	// card balance (added for income categories, subtracted for expense ones)
	// inside a single transaction.
	Pay(ctx context.Context, id, userID int64) (*domain.Account, error)
}
