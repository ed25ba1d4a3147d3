package domain

import "time"

type AccountStatus string

const (
	AccountStatusUnpaid AccountStatus = "unpaid"
	AccountStatusPaid   AccountStatus = "paid"
)

// Account represents an invoice issued to a client.
type Account struct {
	ID           int64
	UserID       int64
	ClientID     int64
	CategoryID   int64
	CardID       *int64
	Amount       float64
	Status       AccountStatus
	Description  string
	CategoryName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	PaidAt       *time.Time
}
