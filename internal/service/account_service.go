package service

import (
	"context"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

// AccountService coordinates invoice operations for a single owner.
type AccountService interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.Account, error)
	// Pay transitions an unpaid account to paid and settles the linked card
	// balance atomically. Paying a paid account returns repository.ErrAlreadyPaid.
	Pay(ctx context.Context, id, userID int64) (*domain.Account, error)
}

type accountService struct {
	accounts repository.AccountRepository
}

func NewAccountService(accounts repository.AccountRepository) AccountService {
	return &accountService{accounts: accounts}
}

func validateAccount(account *domain.Account) error {
	if account.ClientID <= 0 {
		return invalidField("client_id", "client_id must be a positive number")
	}
	if account.Amount < 0 {
		return invalidField("amount", "amount must be greater than or equal to zero")
	}
	switch account.Status {
	case domain.AccountStatusPaid, domain.AccountStatusUnpaid:
	default:
		return invalidField("status", "status must be one of: paid, unpaid")
	}
	if account.CategoryID <= 0 {
		return invalidField("category_id", "category is required")
	}
	if account.CardID != nil && *account.CardID <= 0 {
		return invalidField("card_id", "card_id must be a positive number")
	}
	return nil
}

func (s *accountService) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := validateAccount(account); err != nil {
		return nil, err
	}
	if _, err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) Update(ctx context.Context, account *domain.Account) error {
	if err := validateAccount(account); err != nil {
		return err
	}
	return s.accounts.Update(ctx, account)
}

func (s *accountService) Delete(ctx context.Context, id, userID int64) error {
	return s.accounts.Delete(ctx, id, userID)
}

func (s *accountService) List(ctx context.Context, userID int64) ([]domain.Account, error) {
	return s.accounts.ListByUser(ctx, userID)
}

func (s *accountService) Pay(ctx context.Context, id, userID int64) (*domain.Account, error) {
	return s.accounts.Pay(ctx, id, userID)
}
