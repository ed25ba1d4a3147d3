package service

import (
	"context"
	"strings"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

// TaskService coordinates to-do operations for a single owner.
type TaskService interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, userID int64) error
	List(ctx context.Context, userID int64) ([]domain.Task, error)
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, invalidField("title", "task title is required")
	}
	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, task *domain.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return invalidField("title", "task title is required")
	}
	return s.tasks.Update(ctx, task)
}

func (s *taskService) Delete(ctx context.Context, id, userID int64) error {
	return s.tasks.Delete(ctx, id, userID)
}

func (s *taskService) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}
