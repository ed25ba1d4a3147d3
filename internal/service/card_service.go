package service

import (
	"context"
	"strings"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

// CardService coordinates payment card operations for a single owner.
type CardService interface {
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)
	UpdateBalance(ctx context.Context, id, userID int64, balance float64) error
	Delete(ctx context.Context, id, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.Card, error)
}

type cardService struct {
	cards repository.CardRepository
}

func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if strings.TrimSpace(card.CardNumber) == "" {
		return nil, invalidField("card_number", "card number is required")
	}
	if strings.TrimSpace(card.CardHolderName) == "" {
		return nil, invalidField("card_holder_name", "card holder name is required")
	}
	if _, err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) UpdateBalance(ctx context.Context, id, userID int64, balance float64) error {
	return s.cards.UpdateBalance(ctx, id, userID, balance)
}

func (s *cardService) Delete(ctx context.Context, id, userID int64) error {
	return s.cards.Delete(ctx, id, userID)
}

func (s *cardService) List(ctx context.Context, userID int64) ([]domain.Card, error) {
	return s.cards.ListByUser(ctx, userID)
}
