package domain

import "time"

type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Category classifies accounts. Categories are shared across users.
type Category struct {
	ID          int64
	Name        string
	Description string
	Kind        CategoryKind
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
