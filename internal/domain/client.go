package domain

import "time"

// Client is a customer or supplier the user invoices.
type Client struct {
	ID          int64
	UserID      int64
	Name        string
	Email       string
	Phone       string
	Address     string
	Type        string
	CompanyName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
