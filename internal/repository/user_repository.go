package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"edumate/internal/models"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return duplicate("create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &user, nil
}

// Update writes the profile fields and password digest of user.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	updates := map[string]any{
		"name":       user.Name,
		"student_id": user.StudentID,
		"email":      user.Email,
		"password":   user.PasswordHash,
	}
	res := r.db.WithContext(ctx).Model(user).Updates(updates)
	if res.Error != nil {
		return duplicate("update user", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %w", models.ErrNotFound)
	}
	return nil
}
