package repository

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by someone else.
	// Handlers must not distinguish the two cases.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAlreadyPaid is returned by the pay transition when the account is already paid.
	ErrAlreadyPaid = errors.New("account already paid")
)
