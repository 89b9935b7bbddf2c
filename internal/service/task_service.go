package service

import (
	"context"
	"log/slog"
	"strings"

	"edumate/internal/models"
	"edumate/internal/repository"
)

// TaskInput represents the editable fields of a task form.
type TaskInput struct {
	Title    string
	TaskType string
	DueDate  string
	Notes    string
}

// TaskService wraps task CRUD behind the owner-only check.
type TaskService struct {
	repo   *repository.TaskRepository
	logger *slog.Logger
}

func NewTaskService(repo *repository.TaskRepository, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{repo: repo, logger: logger}
}

// List returns the caller's tasks ordered by due date.
func (s *TaskService) List(ctx context.Context, identity *models.Identity) ([]models.Task, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, identity.UserID)
}

// Create stores a new task owned by the caller.
func (s *TaskService) Create(ctx context.Context, identity *models.Identity, in TaskInput) (*models.Task, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	task, err := in.apply(models.Task{UserID: identity.UserID})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Get returns a task the caller owns.
func (s *TaskService) Get(ctx context.Context, identity *models.Identity, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(identity, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update replaces title, type, due date and notes of a task the caller owns.
func (s *TaskService) Update(ctx context.Context, identity *models.Identity, id int64, in TaskInput) (*models.Task, error) {
	var updated models.Task
	err := s.repo.Atomic(ctx, func(tx *repository.TaskRepository) error {
		task, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(identity, task); err != nil {
			return err
		}
		if updated, err = in.apply(*task); err != nil {
			return err
		}
		return tx.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a task the caller owns. Deletion is permanent.
func (s *TaskService) Delete(ctx context.Context, identity *models.Identity, id int64) error {
	return s.repo.Atomic(ctx, func(tx *repository.TaskRepository) error {
		task, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(identity, task); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

func (s *TaskService) authorize(identity *models.Identity, task *models.Task) error {
	if err := Authorize(identity, task.UserID); err != nil {
		var actor int64
		if identity != nil {
			actor = identity.UserID
		}
		s.logger.Warn("task access denied", slog.Int64("user_id", actor), slog.Int64("task_id", task.ID))
		return err
	}
	return nil
}

func (in TaskInput) apply(task models.Task) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, models.Problemf(models.ErrValidation, "Title is required.")
	}
	due, err := models.ParseDueDate(in.DueDate)
	if err != nil {
		return models.Task{}, err
	}
	task.Title = title
	task.TaskType = strings.TrimSpace(in.TaskType)
	task.DueDate = due
	task.Notes = in.Notes
	return task, nil
}
