package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type TaskService interface {
	Create(ctx context.Context, task *models.Task) error
	Get(ctx context.Context, id int64) (*models.Task, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) error {
	return s.taskRepo.Create(ctx, task)
}

func (s *taskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if repository.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, task *models.Task) error {
	if _, err := s.taskRepo.GetByID(ctx, task.ID); err != nil {
		if repository.NotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.taskRepo.Update(ctx, task)
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if repository.NotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
