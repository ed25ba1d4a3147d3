package service

import (
	"context"
	"strings"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

// CategoryService manages the shared category catalogue.
type CategoryService interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func validateCategory(category *domain.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return invalidField("name", "category name is required")
	}
	switch category.Kind {
	case domain.CategoryKindIncome, domain.CategoryKindExpense:
	default:
		return invalidField("kind", "kind must be one of: income, expense")
	}
	return nil
}

func (s *categoryService) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	if _, err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, category *domain.Category) error {
	if err := validateCategory(category); err != nil {
		return err
	}
	return s.categories.Update(ctx, category)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}
