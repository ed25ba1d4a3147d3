package repository

import (
	"context"

	"finlite/internal/domain"
)

// CardRepository exposes persistence operations for payment cards.
type CardRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, card *domain.Card) (int64, error)
	UpdateBalance(ctx context.Context, id, userID int64, balance float64) error
	Delete(ctx context.Context, id, userID int64) error
	Get(ctx context.Context, id, userID int64) (*domain.Card, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Card, error)
}
