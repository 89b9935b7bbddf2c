package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"edumate/internal/models"
)

// ReminderRepository handles CRUD for reminders. It does not check ownership.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Atomic runs fn against a repository bound to a single transaction.
func (r *ReminderRepository) Atomic(ctx context.Context, fn func(tx *ReminderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ReminderRepository{db: tx})
	})
}

func (r *ReminderRepository) ListByUser(ctx context.Context, userID int64) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("reminder_time ASC, id ASC").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, id int64) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		return nil, notFound("reminder", err)
	}
	return &reminder, nil
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	updates := map[string]any{
		"title":         reminder.Title,
		"reminder_time": reminder.ReminderTime,
		"notes":         reminder.Notes,
	}
	res := r.db.WithContext(ctx).Model(reminder).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reminder %w", models.ErrNotFound)
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Reminder{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reminder %w", models.ErrNotFound)
	}
	return nil
}
