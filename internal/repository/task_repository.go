package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"edumate/internal/models"
)

// TaskRepository handles CRUD for tasks. It does not check ownership.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Atomic runs fn against a repository bound to a single transaction.
func (r *TaskRepository) Atomic(ctx context.Context, fn func(tx *TaskRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TaskRepository{db: tx})
	})
}

// ListByUser returns the user's tasks by due date; equal dates keep insertion order.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("due_date ASC, id ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFound("task", err)
	}
	return &task, nil
}

// Update replaces the editable fields. The completed flag and owner are left alone.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	updates := map[string]any{
		"title":     task.Title,
		"task_type": task.TaskType,
		"due_date":  task.DueDate,
		"notes":     task.Notes,
	}
	res := r.db.WithContext(ctx).Model(task).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %w", models.ErrNotFound)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task %w", models.ErrNotFound)
	}
	return nil
}
