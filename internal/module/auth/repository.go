package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository persists admin accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	Create(ctx context.Context, admin *AdminUser) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var admin AdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

func (r *gormRepository) Create(ctx context.Context, admin *AdminUser) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	return nil
}
