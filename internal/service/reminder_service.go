package service

import (
	"context"
	"log/slog"
	"strings"

	"edumate/internal/models"
	"edumate/internal/repository"
)

// ReminderInput represents the editable fields of a reminder form.
type ReminderInput struct {
	Title        string
	ReminderTime string
	Notes        string
}

// ReminderService wraps reminder CRUD behind the owner-only check.
type ReminderService struct {
	repo   *repository.ReminderRepository
	logger *slog.Logger
}

func NewReminderService(repo *repository.ReminderRepository, logger *slog.Logger) *ReminderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderService{repo: repo, logger: logger}
}

// List returns the caller's reminders, soonest first.
func (s *ReminderService) List(ctx context.Context, identity *models.Identity) ([]models.Reminder, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, identity.UserID)
}

func (s *ReminderService) Create(ctx context.Context, identity *models.Identity, in ReminderInput) (*models.Reminder, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	reminder, err := in.apply(models.Reminder{UserID: identity.UserID})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) Get(ctx context.Context, identity *models.Identity, id int64) (*models.Reminder, error) {
	reminder, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(identity, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) Update(ctx context.Context, identity *models.Identity, id int64, in ReminderInput) (*models.Reminder, error) {
	var updated models.Reminder
	err := s.repo.Atomic(ctx, func(tx *repository.ReminderRepository) error {
		reminder, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(identity, reminder); err != nil {
			return err
		}
		if updated, err = in.apply(*reminder); err != nil {
			return err
		}
		return tx.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ReminderService) Delete(ctx context.Context, identity *models.Identity, id int64) error {
	return s.repo.Atomic(ctx, func(tx *repository.ReminderRepository) error {
		reminder, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorize(identity, reminder); err != nil {
			return err
		}
		return tx.Delete(ctx, id)
	})
}

func (s *ReminderService) authorize(identity *models.Identity, reminder *models.Reminder) error {
	if err := Authorize(identity, reminder.UserID); err != nil {
		var actor int64
		if identity != nil {
			actor = identity.UserID
		}
		s.logger.Warn("reminder access denied", slog.Int64("user_id", actor), slog.Int64("reminder_id", reminder.ID))
		return err
	}
	return nil
}

func (in ReminderInput) apply(reminder models.Reminder) (models.Reminder, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Reminder{}, models.Problemf(models.ErrValidation, "Title is required.")
	}
	at, err := models.ParseReminderTime(in.ReminderTime)
	if err != nil {
		return models.Reminder{}, err
	}
	reminder.Title = title
	reminder.ReminderTime = at
	reminder.Notes = in.Notes
	return reminder, nil
}
