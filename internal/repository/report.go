package repository

import (
	"context"

	"finlite/internal/domain"
)

// ReportRepository records export actions.
type ReportRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, report *domain.Report) (int64, error)
	Get(ctx context.Context, id, userID int64) (*domain.Report, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Report, error)
	Delete(ctx context.Context, id, userID int64) error
}
