package domain

import "time"

// Card is a payment card holding a balance.
type Card struct {
	ID             int64
	UserID         int64
	CardNumber     string
	CardHolderName string
	ExpirationDate string
	CVV            string
	Balance        float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
