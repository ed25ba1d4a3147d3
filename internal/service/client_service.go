package service

import (
	"context"
	"strings"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

// ClientService coordinates client book operations for a single owner.
type ClientService interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.Client, error)
}

type clientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

func validateClient(client *domain.Client) error {
	if strings.TrimSpace(client.Name) == "" {
		return invalidField("name", "client name is required")
	}
	if strings.TrimSpace(client.Type) == "" {
		return invalidField("type", "client type is required")
	}
	return nil
}

func (s *clientService) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if _, err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, client *domain.Client) error {
	if err := validateClient(client); err != nil {
		return err
	}
	return s.clients.Update(ctx, client)
}

func (s *clientService) Delete(ctx context.Context, id, userID int64) error {
	return s.clients.Delete(ctx, id, userID)
}

func (s *clientService) List(ctx context.Context, userID int64) ([]domain.Client, error) {
	return s.clients.ListByUser(ctx, userID)
}
